package content

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"portfolio-chat/internal/domain"
)

//go:embed default.yaml
var defaultDocument []byte

// Embedded serves the document compiled into the binary.
type Embedded struct{}

func (Embedded) Load(context.Context) (domain.Content, error) {
	return Parse(defaultDocument)
}

// File reads a YAML document from disk.
type File struct {
	Path string
}

func (f File) Load(context.Context) (domain.Content, error) {
	if strings.TrimSpace(f.Path) == "" {
		return domain.Content{}, errors.New("content: file path must not be empty")
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return domain.Content{}, fmt.Errorf("content: read %s: %w", f.Path, err)
	}
	return Parse(data)
}

// ParamGetter is satisfied by paramstore.Client.
type ParamGetter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// Parameter reads a YAML document stored in a single SSM parameter.
type Parameter struct {
	getter ParamGetter
	name   string
}

func NewParameter(g ParamGetter, name string) (*Parameter, error) {
	if g == nil {
		return nil, errors.New("content: param getter must not be nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("content: parameter name must not be empty")
	}
	return &Parameter{getter: g, name: name}, nil
}

func (p *Parameter) Load(ctx context.Context) (domain.Content, error) {
	raw, err := p.getter.GetParameter(ctx, p.name)
	if err != nil {
		return domain.Content{}, fmt.Errorf("content: load parameter: %w", err)
	}
	return Parse([]byte(raw))
}

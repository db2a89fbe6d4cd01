package domain

// Response keys consulted by the keyword router.
const (
	ResponseProjects = "projects"
	ResponseAbout    = "about"
	ResponseSkills   = "skills"
	ResponseContact  = "contact"
	ResponseDefault  = "default"
)

// RequiredResponses lists the keys every content document must define.
var RequiredResponses = []string{
	ResponseProjects,
	ResponseAbout,
	ResponseSkills,
	ResponseContact,
	ResponseDefault,
}

// Content is the static portfolio configuration consumed by the chat front-end.
type Content struct {
	Name                 string
	Bio                  string
	AvatarRef            string
	PresentationImageRef string
	SuggestedPrompts     []SuggestionItem
	Responses            map[string]Payload
}

// Package site holds the public site's static data and the pure helpers its
// pages share: social links, navigation and the project filter.
package site

type SocialLink struct {
	ID     string `json:"id" yaml:"id"`
	Label  string `json:"label" yaml:"label"`
	Handle string `json:"handle" yaml:"handle"`
	Href   string `json:"href" yaml:"href"`
	Icon   string `json:"icon" yaml:"icon"`
}

// Socials returns the contact links in display order.
func Socials() []SocialLink {
	return []SocialLink{
		{ID: "linkedin", Label: "LinkedIn", Handle: "@ishanichuri", Href: "https://www.linkedin.com/in/ishanichuri/", Icon: "/icons/linkedin-brands-solid-full.svg"},
		{ID: "instagram", Label: "Instagram", Handle: "@ishanichuri", Href: "https://www.instagram.com/ishanichuri/", Icon: "/icons/instagram-brands-solid-full.svg"},
		{ID: "behance", Label: "Behance", Handle: "ishanichuri", Href: "https://www.behance.net/ishanichuri", Icon: "/icons/behance-brands-solid-full.svg"},
		{ID: "email", Label: "Email", Handle: "ishanichuri@gmail.com", Href: "mailto:ishanichuri@gmail.com", Icon: "/icons/at-solid-full.svg"},
	}
}

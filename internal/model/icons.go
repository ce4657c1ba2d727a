package model

import "strings"

// legacyIcons maps skill icons that used to be served from /skills/ to
// their CDN equivalents. Old documents still carry the local paths.
var legacyIcons = map[string]string{
	"/skills/nextjs.svg":     "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/nextjs/nextjs-original.svg",
	"/skills/react.svg":      "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/react/react-original.svg",
	"/skills/javascript.svg": "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/javascript/javascript-original.svg",
	"/skills/typescript.svg": "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/typescript/typescript-original.svg",
	"/skills/nodejs.svg":     "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/nodejs/nodejs-original.svg",
	"/skills/tailwind.svg":   "https://cdn.jsdelivr.net/gh/devicons/devicon@latest/icons/tailwindcss/tailwindcss-original.svg",
	"/skills/git.svg":        "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/git/git-original.svg",
	"/skills/mongodb.svg":    "https://cdn.jsdelivr.net/gh/devicons/devicon/icons/mongodb/mongodb-original.svg",
}

func ResolveIcon(icon string) string {
	if !strings.HasPrefix(icon, "/skills/") {
		return icon
	}
	if cdn, ok := legacyIcons[icon]; ok {
		return cdn
	}
	return icon
}

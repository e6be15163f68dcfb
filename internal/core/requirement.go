package core

import (
	"regexp"
	"strings"
)

var requirementNameRegex = regexp.MustCompile(`^([A-Za-z0-9][-A-Za-z0-9._]*[A-Za-z0-9]|[A-Za-z0-9])(\s*\[.*?\])?`)

// ParseRequirement parses a PEP 508 requirement string into a Dependency.
//
// Handles extras brackets, parenthesized version specs, and environment
// markers after ";". Requirements default to "*" when unconstrained.
func ParseRequirement(req string) Dependency {
	// Split on ; first to get the environment marker
	parts := strings.SplitN(req, ";", 2)
	nameAndVersion := strings.TrimSpace(parts[0])

	var marker string
	if len(parts) > 1 {
		marker = strings.TrimSpace(parts[1])
	}

	var name, requirements string
	match := requirementNameRegex.FindStringSubmatch(nameAndVersion)
	if match != nil {
		name = strings.TrimSpace(match[1])
		requirements = strings.TrimSpace(nameAndVersion[len(match[0]):])
		// Remove parentheses around the version spec
		requirements = strings.Trim(requirements, "()")
		requirements = strings.TrimSpace(requirements)
	} else {
		name = nameAndVersion
	}

	var extras []string
	if match != nil && match[2] != "" {
		inner := strings.Trim(strings.TrimSpace(match[2]), "[]")
		for _, e := range strings.Split(inner, ",") {
			if e = strings.TrimSpace(e); e != "" {
				extras = append(extras, e)
			}
		}
	}
	if idx := strings.Index(name, "["); idx != -1 {
		name = name[:idx]
	}

	if requirements == "" {
		requirements = "*"
	}

	scope := Runtime
	optional := false
	if marker != "" {
		optional = true
		if strings.Contains(marker, `extra ==`) {
			scope = Optional
		}
	}

	return Dependency{
		Name:         name,
		Extras:       extras,
		Requirements: requirements,
		Scope:        scope,
		Marker:       marker,
		Optional:     optional,
	}
}

// FormatRequirement renders a Dependency back into PEP 508 form.
func FormatRequirement(d Dependency) string {
	var sb strings.Builder
	sb.WriteString(d.Name)
	if len(d.Extras) > 0 {
		sb.WriteString("[")
		sb.WriteString(strings.Join(d.Extras, ","))
		sb.WriteString("]")
	}
	if d.Requirements != "" && d.Requirements != "*" {
		sb.WriteString(" ")
		sb.WriteString(d.Requirements)
	}
	if d.Marker != "" {
		sb.WriteString(" ; ")
		sb.WriteString(d.Marker)
	}
	return sb.String()
}

package permission

import "sort"

// Resolve unions directly assigned codenames with the codenames granted
// through each of the user's groups and deduplicates the result. The same
// codename reached through several groups, or both directly and through a
// group, collapses to one entry.
func Resolve(direct []string, groupGrants ...[]string) []string {
	seen := make(map[string]struct{}, len(direct))
	var effective []string

	add := func(codenames []string) {
		for _, codename := range codenames {
			if codename == "" {
				continue
			}
			if _, ok := seen[codename]; ok {
				continue
			}
			seen[codename] = struct{}{}
			effective = append(effective, codename)
		}
	}

	add(direct)
	for _, grants := range groupGrants {
		add(grants)
	}

	// deterministic output keeps logs and tests stable
	sort.Strings(effective)
	return effective
}

// HasAny reports whether any of the required codenames is present in the
// effective set. Callers pass several codenames to express OR semantics;
// super-user status short-circuits before this is ever consulted.
func HasAny(effective []string, required []string) bool {
	if len(required) == 0 {
		return false
	}
	for _, have := range effective {
		for _, want := range required {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Has reports whether a single codename is present in the effective set.
func Has(effective []string, codename string) bool {
	return HasAny(effective, []string{codename})
}

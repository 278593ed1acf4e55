package view

import (
	"sort"

	"github.com/Azterny/Brawl-Track-sub000/internal/domain"
)

// SortMembers orders club members by trophies descending, then by name.
func SortMembers(members []domain.ClubMember) []domain.ClubMember {
	out := make([]domain.ClubMember, len(members))
	copy(out, members)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Trophies != out[j].Trophies {
			return out[i].Trophies > out[j].Trophies
		}
		return out[i].Name < out[j].Name
	})
	return out
}

var roleLabels = map[string]string{
	"president":     "President",
	"vicePresident": "Vice President",
	"senior":        "Senior",
	"member":        "Member",
}

func RoleLabel(role string) string {
	if l, ok := roleLabels[role]; ok {
		return l
	}
	return "Member"
}

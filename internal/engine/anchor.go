package engine

import "github.com/actuallystonmai/daily-menu-service/internal/domain"

// selectAnchor returns the most recent cooked recipe that is still a
// candidate, else the most recent such favorite, else nil.
func selectAnchor(histories []domain.CookedHistory, favorites []domain.Favorite, idx *candidateIndex) *domain.Recipe {
	for _, h := range histories {
		if h.Recipe == nil {
			continue
		}
		if r, ok := idx.get(h.Recipe.ID); ok {
			return r
		}
	}
	for _, f := range favorites {
		if f.Recipe == nil {
			continue
		}
		if r, ok := idx.get(f.Recipe.ID); ok {
			return r
		}
	}
	return nil
}

// anchorSource re-derives where an anchor came from using the same inputs
// selectAnchor saw.
func anchorSource(anchor *domain.Recipe, histories []domain.CookedHistory, favorites []domain.Favorite) domain.AnchorSource {
	if anchor == nil {
		return domain.AnchorNone
	}
	for _, h := range histories {
		if h.Recipe != nil && h.Recipe.ID == anchor.ID {
			return domain.AnchorCookedHistory
		}
	}
	for _, f := range favorites {
		if f.Recipe != nil && f.Recipe.ID == anchor.ID {
			return domain.AnchorFavorite
		}
	}
	return domain.AnchorUnknown
}

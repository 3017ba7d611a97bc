package browser

import (
	"github.com/gartstein/efportfolio/internal/portfolio/engine"
	"github.com/gartstein/efportfolio/internal/portfolio/models"
)

// View is everything a render needs, computed from State.
type View struct {
	Stats      engine.Stats
	Rows       []models.Company
	Industries []string
	Query      engine.Query
	Loading    bool
	Failed     bool
	Detail     *Detail
}

// Detail is the open company with its founder panel.
type Detail struct {
	Company  models.Company
	Founders []models.Founder
	Loading  bool
}

// Derive is a pure function of st. Aggregates always cover the whole
// snapshot; only the table rows follow the query.
func Derive(st State) View {
	v := View{
		Query:   st.Query,
		Loading: !st.Loaded,
		Failed:  st.LoadErr != nil,
	}
	if v.Loading || v.Failed {
		return v
	}
	v.Stats = engine.Summarize(st.Companies)
	v.Rows = engine.Apply(st.Companies, st.Query)
	v.Industries = engine.Industries(st.Companies)

	if st.HasSelection {
		for _, c := range st.Companies {
			if c.ID == st.Selected {
				v.Detail = &Detail{
					Company:  c,
					Founders: st.Founders,
					Loading:  st.FoundersLoading,
				}
				break
			}
		}
	}
	return v
}

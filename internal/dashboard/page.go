package dashboard

import (
	_ "embed"
	"html/template"
	"io"

	"kakao/internal/analysis"
	"kakao/internal/chart"
	"kakao/internal/report"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"chartURL":     func(name string) string { return "/charts/" + chart.FileName(name) },
	"formatNumber": report.FormatNumber,
}).Parse(indexHTML))

type pageView struct {
	Summary   *analysis.Summary
	TopRegion string
	Tabs      []tabView
}

type tabView struct {
	ID       string
	Title    string
	Sections []sectionView
}

type sectionView struct {
	Title string
	Chart string
	Table *report.Table
	Notes []string
}

func newPageView(s *analysis.Summary) pageView {
	tables := report.Tables(s)
	v := pageView{Summary: s}
	if len(s.Regional) > 0 {
		v.TopRegion = s.Regional[0].Region
	}

	for _, tab := range report.Tabs() {
		tv := tabView{ID: tab.ID, Title: tab.Title}
		for _, sec := range tab.Sections {
			sv := sectionView{Title: sec.Title, Chart: sec.Chart, Notes: sec.Notes}
			if t, ok := report.Lookup(tables, sec.Table); ok {
				sv.Table = &t
			}
			tv.Sections = append(tv.Sections, sv)
		}
		v.Tabs = append(v.Tabs, tv)
	}
	return v
}

func renderIndex(w io.Writer, s *analysis.Summary) error {
	return indexTemplate.Execute(w, newPageView(s))
}

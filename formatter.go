package wikinews

import "strings"

// DefaultFormat renders one story per line as headline, source and URL.
const DefaultFormat = "{text} {source} {url}\n"

// Format renders every story depth-first through template. The
// placeholders {text}, {source}, {url} and {date} are replaced with the
// story's headline, publisher, citation link and YYYY-MM-DD date.
func (s *Snapshot) Format(template string) string {
	var b strings.Builder
	for st := range s.Stories() {
		r := strings.NewReplacer(
			"{text}", st.Text,
			"{source}", st.Source,
			"{url}", st.URL,
			"{date}", st.Date.Format(DateLayout),
		)
		_, _ = r.WriteString(&b, template)
	}
	return b.String()
}

package youtube

import (
	"encoding/xml"
	"fmt"
	"html"
	"strings"

	"github.com/harshanmathew/Youtube/internal/domain"
)

type timedTextXML struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Body  string  `xml:",chardata"`
	} `xml:"text"`
}

// parseTimedText decodes a timedtext XML document into raw cues. Cue text is
// double-escaped in the wire format ("&amp;#39;"), so the XML chardata needs
// one more round of HTML unescaping. Empty cues are dropped.
func parseTimedText(body []byte) ([]domain.Cue, error) {
	var doc timedTextXML
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse timedtext XML: %w", err)
	}

	cues := make([]domain.Cue, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		text := strings.TrimSpace(html.UnescapeString(t.Body))
		if text == "" {
			continue
		}
		cues = append(cues, domain.Cue{
			Start:    t.Start,
			Duration: t.Dur,
			Text:     text,
		})
	}
	return cues, nil
}

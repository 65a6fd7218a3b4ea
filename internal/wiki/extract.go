package wiki

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"wikigear/internal"
	"wikigear/internal/util"
)

const (
	retiredNotice  = "This item has been retired. Wizards can no longer acquire this item."
	categoryPrefix = "/wiki/Category:"
	iconAltPrefix  = "(Icon)"
)

var reLineBreak = regexp.MustCompile(`(?i)<br\s*/?>`)

// ExtractItem reads one item page into a raw record. Missing pieces are
// left at their zero values; the transform stage defaults them.
func ExtractItem(doc *goquery.Document, pageURL, title string) (internal.RawRecord, bool) {
	rec := internal.RawRecord{URL: pageURL, Title: title}

	infoBox := doc.Find(`table[width="300"]`).First()
	if infoBox.Length() == 0 {
		infoBox = doc.Find("table.infobox").First()
	}

	found := infoBox.Length() > 0
	jewel := found && isJewelPage(infoBox, title)
	switch {
	case jewel:
		extractJewelInfo(infoBox, &rec)
	case found:
		extractStandardInfo(infoBox, &rec)
	default:
		rec.Bonuses = []internal.RawBonus{}
		rec.Sockets = []string{}
	}

	rec.Status = internal.StatusActive
	if findBold(doc.Selection, retiredNotice).Length() > 0 {
		rec.Status = internal.StatusRetired
	}

	if jewel {
		rec.Category = jewelCategories(doc)
	} else {
		rec.Category = cellCategories(doc)
	}

	return rec, found
}

func isJewelPage(infoBox *goquery.Selection, title string) bool {
	if findBold(infoBox, "Jewel Information").Length() > 0 {
		return true
	}
	return strings.HasPrefix(strings.ToLower(title), "jewel:")
}

func extractStandardInfo(infoBox *goquery.Selection, rec *internal.RawRecord) {
	if level := findBold(infoBox, "Level Required:"); level.Length() > 0 {
		text := level.Parent().Text()
		rec.LevelRequired = strings.TrimSpace(strings.Replace(text, "Level Required:", "", 1))
	}

	rec.Bonuses = []internal.RawBonus{}
	if label := findBold(infoBox, "Bonuses:"); label.Length() > 0 {
		if dl := nextElement(label.Get(0), "dl"); dl != nil {
			infoBox.FindNodes(dl).Find("dd").Each(func(_ int, dd *goquery.Selection) {
				rec.Bonuses = append(rec.Bonuses, internal.RawBonus{
					Bonus: joinedText(dd),
					Icons: bonusIcons(dd),
				})
			})
		}
	}

	rec.Sockets = []string{}
	if label := findBold(infoBox, "Sockets"); label.Length() > 0 {
		listing := label.Closest("dl").NextAllFiltered("dl").First()
		listing.Find("dd").Each(func(_ int, dd *goquery.Selection) {
			if title, ok := dd.Find("img").First().Attr("title"); ok && title != "" {
				rec.Sockets = append(rec.Sockets, title)
				return
			}
			if text := joinedText(dd); text != "" {
				rec.Sockets = append(rec.Sockets, text)
			}
		})
	}

	rec.Tradeable = findBold(infoBox, "Tradeable").Length() > 0
	rec.NoAuction = findBold(infoBox, "No Auction").Length() > 0
}

func extractJewelInfo(infoBox *goquery.Selection, rec *internal.RawRecord) {
	extra := map[string]string{}

	infoBox.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() != 2 {
			return
		}
		label := cells.Eq(0).Find("b").First()
		if label.Length() == 0 {
			return
		}
		field := strings.TrimRight(strings.ToLower(strings.TrimSpace(label.Text())), ":")
		value := cells.Eq(1)

		switch field {
		case "level":
			if text := joinedText(value); text != "" {
				rec.LevelRequired = text
			}
		case "socket":
			sockets := []string{}
			if text := joinedText(value); text != "" {
				sockets = append(sockets, text)
			}
			value.Find("img").Each(func(_ int, img *goquery.Selection) {
				if title := strings.TrimSpace(img.AttrOr("title", "")); title != "" {
					sockets = append(sockets, title)
				}
			})
			rec.Sockets = sockets
		case "type", "school", "weaving school":
			values := []string{}
			if text := joinedText(value); text != "" {
				values = append(values, text)
			}
			value.Find("img").Each(func(_ int, img *goquery.Selection) {
				icon := img.AttrOr("title", "")
				if icon == "" {
					icon = img.AttrOr("alt", "")
				}
				if icon = strings.TrimSpace(icon); icon != "" {
					values = append(values, icon)
				}
			})
			switch field {
			case "type":
				rec.Type = &values
			case "school":
				rec.School = &values
			default:
				rec.WeavingSchool = &values
			}
		case "effect":
			rec.Bonuses = effectBonuses(value)
		default:
			extra[field] = joinedText(value)
		}
	})

	if rec.Bonuses == nil {
		rec.Bonuses = []internal.RawBonus{}
	}
	if rec.Sockets == nil {
		rec.Sockets = []string{}
	}
	if len(extra) > 0 {
		rec.AdditionalInfo = extra
	}
}

// effectBonuses splits the effect cell on <br> and reads each line as its
// own bonus, taking icon labels from the img alt text.
func effectBonuses(cell *goquery.Selection) []internal.RawBonus {
	inner, err := cell.Html()
	if err != nil {
		return []internal.RawBonus{}
	}

	bonuses := []internal.RawBonus{}
	for _, line := range reLineBreak.Split(inner, -1) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		frag, err := goquery.NewDocumentFromReader(strings.NewReader(line))
		if err != nil {
			continue
		}
		icons := []string{}
		frag.Find("img").Each(func(_ int, img *goquery.Selection) {
			if alt := strings.TrimSpace(img.AttrOr("alt", "")); alt != "" {
				icons = append(icons, alt)
			}
		})
		bonuses = append(bonuses, internal.RawBonus{Bonus: joinedText(frag.Selection), Icons: icons})
	}
	return bonuses
}

// bonusIcons reads "(Icon) Fire.png" style alt texts into "Fire".
func bonusIcons(dd *goquery.Selection) []string {
	icons := []string{}
	dd.Find("img").Each(func(_ int, img *goquery.Selection) {
		alt := img.AttrOr("alt", "")
		if !strings.HasPrefix(alt, iconAltPrefix) {
			return
		}
		name := strings.TrimSpace(strings.ReplaceAll(alt, iconAltPrefix, ""))
		if strings.HasSuffix(strings.ToLower(name), ".png") {
			name = strings.TrimSpace(name[:len(name)-4])
		}
		icons = append(icons, name)
	})
	return icons
}

// cellCategories takes the first category link of every table cell.
func cellCategories(doc *goquery.Document) []string {
	out := []string{}
	doc.Find("td").Each(func(_ int, td *goquery.Selection) {
		if href, ok := td.Find(`a[href^="` + categoryPrefix + `"]`).First().Attr("href"); ok {
			out = append(out, href)
		}
	})
	return out
}

func jewelCategories(doc *goquery.Document) []string {
	out := []string{}
	doc.Find(`a[href^="` + categoryPrefix + `"]`).Each(func(_ int, a *goquery.Selection) {
		out = append(out, strings.TrimPrefix(a.AttrOr("href", ""), categoryPrefix))
	})
	return out
}

func findBold(sel *goquery.Selection, needle string) *goquery.Selection {
	return sel.Find("b").FilterFunction(func(_ int, b *goquery.Selection) bool {
		return strings.Contains(b.Text(), needle)
	}).First()
}

// joinedText trims every text node and joins the non-empty ones with a
// single space.
func joinedText(sel *goquery.Selection) string {
	parts := []string{}
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return util.NormalizeSpaces(strings.Join(parts, " "))
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// nextElement finds the first element named tag that follows from in
// document order, descendants of from included.
func nextElement(from *html.Node, tag string) *html.Node {
	n := from
	for {
		switch {
		case n.FirstChild != nil:
			n = n.FirstChild
		case n.NextSibling != nil:
			n = n.NextSibling
		default:
			for n.Parent != nil && n.Parent.NextSibling == nil {
				n = n.Parent
			}
			if n.Parent == nil {
				return nil
			}
			n = n.Parent.NextSibling
		}
		if n.Type == html.ElementNode && n.Data == tag {
			return n
		}
	}
}

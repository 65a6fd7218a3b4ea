package wiki

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"wikigear/internal"
)

func parseHTML(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

const hatPage = `<html><body>
<table width="300">
<tr><td><b>Level Required:</b> 45</td></tr>
<tr><td>
  <b>Bonuses:</b>
  <dl>
    <dd>+25 <img alt="(Icon) Max Health.png" src="h.png"> Max Health</dd>
    <dd>+5% <img alt="(Icon) Fire.png" src="f.png"> <img alt="(Icon) Damage.png" src="d.png"></dd>
    <dd>Plain text bonus</dd>
  </dl>
</td></tr>
<tr><td>
  <dl><dt><b>Sockets</b></dt></dl>
  <dl>
    <dd><img title="Tear" alt="tear" src="t.png"></dd>
    <dd>Square</dd>
  </dl>
</td></tr>
<tr><td><b>No Auction</b></td></tr>
</table>
<p><b>This item has been retired. Wizards can no longer acquire this item.</b></p>
<table><tr>
  <td><a href="/wiki/Category:Hats">Hats</a> <a href="/wiki/Category:Extra">Extra</a></td>
  <td><a href="/wiki/Category:Ice_School_Items">Ice</a></td>
  <td>no links</td>
</tr></table>
</body></html>`

func TestExtractItemStandardLayout(t *testing.T) {
	rec, found := ExtractItem(parseHTML(t, hatPage), "https://wiki.test/wiki/Item:Frost_Hat", "Frost Hat")
	require.True(t, found)

	require.Equal(t, "Frost Hat", rec.Title)
	require.Equal(t, "45", rec.LevelRequired)
	require.Equal(t, []internal.RawBonus{
		{Bonus: "+25 Max Health", Icons: []string{"Max Health"}},
		{Bonus: "+5%", Icons: []string{"Fire", "Damage"}},
		{Bonus: "Plain text bonus", Icons: []string{}},
	}, rec.Bonuses)
	require.Equal(t, []string{"Tear", "Square"}, rec.Sockets)
	require.False(t, rec.Tradeable)
	require.True(t, rec.NoAuction)
	require.Equal(t, internal.StatusRetired, rec.Status)
	require.Equal(t, []string{
		"/wiki/Category:Hats",
		"/wiki/Category:Ice_School_Items",
	}, rec.Category)
}

func TestExtractItemWithoutInfoBox(t *testing.T) {
	rec, found := ExtractItem(parseHTML(t, `<html><body><p>stub</p></body></html>`), "u", "Stub")
	require.False(t, found)
	require.Equal(t, internal.StatusActive, rec.Status)
	require.Empty(t, rec.Bonuses)
	require.NotNil(t, rec.Bonuses)
	require.Empty(t, rec.Category)
}

const jewelPage = `<html><body>
<table class="infobox">
<tr><td colspan="2"><b>Jewel Information</b></td></tr>
<tr><td><b>Level:</b></td><td>Level 60+</td></tr>
<tr><td><b>Socket:</b></td><td><img title="Circle" alt="circle" src="c.png"></td></tr>
<tr><td><b>Type:</b></td><td>Pet Jewel</td></tr>
<tr><td><b>School:</b></td><td><img alt="Fire" src="fire.png"></td></tr>
<tr><td><b>Effect:</b></td><td>+10 <img alt="Damage" src="d.png"><br>Gives a card<br/></td></tr>
<tr><td><b>Source:</b></td><td>Crafting  Station</td></tr>
</table>
<div id="catlinks">
  <a href="/wiki/Category:Jewels">Jewels</a>
  <a href="/wiki/Category:Circle_Jewels">Circle</a>
</div>
</body></html>`

func TestExtractItemJewelLayout(t *testing.T) {
	rec, found := ExtractItem(parseHTML(t, jewelPage), "https://wiki.test/wiki/Jewel:Fiery", "Jewel:Fiery")
	require.True(t, found)

	require.Equal(t, "Level 60+", rec.LevelRequired)
	require.Equal(t, []string{"Circle"}, rec.Sockets)
	require.NotNil(t, rec.Type)
	require.Equal(t, []string{"Pet Jewel"}, *rec.Type)
	require.NotNil(t, rec.School)
	require.Equal(t, []string{"Fire"}, *rec.School)
	require.Nil(t, rec.WeavingSchool)
	require.Equal(t, []internal.RawBonus{
		{Bonus: "+10", Icons: []string{"Damage"}},
		{Bonus: "Gives a card", Icons: []string{}},
	}, rec.Bonuses)
	require.Equal(t, map[string]string{"source": "Crafting Station"}, rec.AdditionalInfo)
	require.Equal(t, internal.StatusActive, rec.Status)
	require.Equal(t, []string{"Jewels", "Circle_Jewels"}, rec.Category)
}

func TestParseCategoryPageWithoutSection(t *testing.T) {
	_, _, ok := ParseCategoryPage(parseHTML(t, `<html><body></body></html>`))
	require.False(t, ok)
}

package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/poiscout"
	"github.com/fwojciec/poiscout/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements poiscout.Converter at compile time.
var _ poiscout.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		html := `<p>The fort museum closes on Fridays.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "The fort museum closes on Fridays.")
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Things to Do</h1><h2>Beaches</h2><h3>Marina Beach</h3>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Things to Do")
		assert.Contains(t, md, "## Beaches")
		assert.Contains(t, md, "### Marina Beach")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		html := `<p>Book tickets at <a href="https://example.com/tickets">the box office</a> in advance.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[the box office](https://example.com/tickets)")
	})

	t.Run("converts unordered lists", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li>Marina Beach</li><li>Fort St. George</li><li>Government Museum</li></ul>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "- Marina Beach")
		assert.Contains(t, md, "- Fort St. George")
		assert.Contains(t, md, "- Government Museum")
	})

	t.Run("converts ordered lists", func(t *testing.T) {
		t.Parallel()

		html := `<ol><li>Morning at the fort</li><li>Lunch in Mylapore</li><li>Sunset on the beach</li></ol>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "1. Morning at the fort")
		assert.Contains(t, md, "2. Lunch in Mylapore")
		assert.Contains(t, md, "3. Sunset on the beach")
	})

	t.Run("converts images", func(t *testing.T) {
		t.Parallel()

		html := `<p><img src="https://example.com/lighthouse.jpg" alt="Chennai lighthouse"></p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "![Chennai lighthouse](https://example.com/lighthouse.jpg)")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Place</th><th>Entry</th></tr></thead>
<tbody><tr><td>Museum</td><td>250</td></tr><tr><td>Fort</td><td>Free</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		// Table cells may have padding for alignment, so check for content
		assert.Contains(t, md, "Place")
		assert.Contains(t, md, "Entry")
		assert.Contains(t, md, "Museum")
		assert.Contains(t, md, "Fort")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("converts bold and italic", func(t *testing.T) {
		t.Parallel()

		html := `<p><strong>Free entry</strong> on the <em>first Sunday</em> of each month.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "**Free entry**")
		assert.Contains(t, md, "*first Sunday*")
	})

	t.Run("converts blockquotes", func(t *testing.T) {
		t.Parallel()

		html := `<blockquote><p>The sunrise alone is worth the trip.</p></blockquote>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "> The sunrise alone is worth the trip.")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("")

		require.Error(t, err)
		assert.Equal(t, poiscout.EINVALID, poiscout.ErrorCode(err))
	})

	t.Run("handles complete guide page", func(t *testing.T) {
		t.Parallel()

		html := `<div>
<h1>A Weekend in Chennai</h1>
<p>Two days is enough for the essential stops.</p>
<h2>Day One</h2>
<p>Start with the classics:</p>
<ul>
<li>Fort St. George</li>
<li>Marina Beach at sunset</li>
</ul>
<h2>Practical Details</h2>
<p>Auto rickshaws are the easiest way between stops. Check <a href="https://example.com/metro">the metro map</a> for longer hops.</p>
<table>
<thead><tr><th>Sight</th><th>Hours</th><th>Entry</th></tr></thead>
<tbody>
<tr><td>Fort Museum</td><td>10:00 - 17:00</td><td>250</td></tr>
<tr><td>Marina Beach</td><td>Always open</td><td>Free</td></tr>
</tbody>
</table>
<p>Entry to the beach is <strong>free</strong> year round.</p>
</div>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# A Weekend in Chennai")
		assert.Contains(t, md, "## Day One")
		assert.Contains(t, md, "- Fort St. George")
		assert.Contains(t, md, "[the metro map](https://example.com/metro)")
		assert.Contains(t, md, "**free**")
		// Table cells may have padding for alignment
		assert.Contains(t, md, "Sight")
		assert.Contains(t, md, "Hours")
		assert.Contains(t, md, "Fort Museum")
	})
}

package mlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	spanBeginDE   = `<span contenteditable="false" class="multilang-begin mceNonEditable" data-mce-contenteditable="false" lang="de" xml:lang="de">{mlang de}</span>`
	spanBeginEN   = `<span contenteditable="false" class="multilang-begin mceNonEditable" data-mce-contenteditable="false" lang="en" xml:lang="en">{mlang en}</span>`
	spanEndMarkup = `<span contenteditable="false" class="multilang-end mceNonEditable" data-mce-contenteditable="false">{mlang}</span>`
)

func TestMarkerTemplates(t *testing.T) {
	assert.Equal(t, spanBeginDE, BeginSpan("de"))
	assert.Equal(t, spanEndMarkup, EndSpan())
	assert.Equal(t,
		`<span contenteditable="false" class="multilang-begin mceNonEditable fallback" data-mce-contenteditable="false" lang="fr" xml:lang="fr">{mlang fr}</span>`,
		FallbackBeginSpan("fr"))
	assert.Equal(t,
		`<span contenteditable="false" class="multilang-end mceNonEditable fallback" data-mce-contenteditable="false">{mlang}</span>`,
		FallbackEndSpan())
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"markers spread via several block elements",
			`<div class="clo">{mlang de}</div><div>Foo bar {mlang}</div>`,
			`<div class="clo">` + spanBeginDE + `</div><div>Foo bar ` + spanEndMarkup + `</div>`,
		},
		{
			"linebreak between markers",
			`{mlang de}<br>{mlang}`,
			spanBeginDE + `<br>` + spanEndMarkup,
		},
		{
			"image enclosed by markers",
			`{mlang de}<img src="https://example.com/image.jpg">{mlang}`,
			spanBeginDE + `<img src="https://example.com/image.jpg">` + spanEndMarkup,
		},
		{
			"only one closing marker",
			`<div>Foo bar {mlang}</div>`,
			`<div>Foo bar {mlang}</div>`,
		},
		{
			"only one opening marker",
			`<div>{mlang de}Foo bar</div>`,
			`<div>` + spanBeginDE + `Foo bar</div>`,
		},
		{
			"enclosed markers in between",
			`<div>{mlang de}Foo bar{mlang other}Bar baz{mlang}{mlang}</div>`,
			`<div>` + spanBeginDE + `Foo bar{mlang other}Bar baz{mlang}` + spanEndMarkup + `</div>`,
		},
		{
			"markers in text and attributes, attributes without value",
			"<p>{mlang en}This is a test{mlang}{mlang de}Das ist ein Test{mlang}.</p>\n" +
				"<p>This is a multilang link: <a\n" +
				"    href=\"https://google.com?lang={mlang de}de-DE{mlang}{mlang en}en-EN{mlang}\" target=\"_blank\">{mlang\n" +
				"    de}de{mlang}{mlang en}other{mlang}</a></p>\n" +
				"<p>{mlang de}</p>\n" +
				"<p>ein Paragraf auf Deutch</p>\n" +
				"<br><hr strong/>\n" +
				"<p class=\"clo\">{mlang}</p>\n",
			"<p>" + spanBeginEN + "This is a test" + spanEndMarkup + spanBeginDE + "Das ist ein Test" + spanEndMarkup + ".</p>\n" +
				"<p>This is a multilang link: <a\n" +
				"    href=\"https://google.com?lang={mlang de}de-DE{mlang}{mlang en}en-EN{mlang}\" target=\"_blank\">" +
				spanBeginDE + "de" + spanEndMarkup + spanBeginEN + "other" + spanEndMarkup + "</a></p>\n" +
				"<p>" + spanBeginDE + "</p>\n" +
				"<p>ein Paragraf auf Deutch</p>\n" +
				"<br><hr strong/>\n" +
				"<p class=\"clo\">" + spanEndMarkup + "</p>\n",
		},
		{
			"markers mixed with already rendered spans",
			"<p>{mlang other}This is <b>a</b> test{mlang}{mlang de}Das ist ein Test{mlang}.</p>\n" +
				"<p><span contenteditable=\"false\" class=\"multilang-begin mceNonEditable\"\n" +
				"data-mce-contenteditable=\"false\" lang=\"en\" xml:lang=\"en\">{mlang en}</span>English rules" +
				spanEndMarkup + "</p>",
			"<p>" + BeginSpan("other") + "This is <b>a</b> test" + spanEndMarkup + spanBeginDE + "Das ist ein Test" + spanEndMarkup + ".</p>\n" +
				"<p><span contenteditable=\"false\" class=\"multilang-begin mceNonEditable\"\n" +
				"data-mce-contenteditable=\"false\" lang=\"en\" xml:lang=\"en\">{mlang en}</span>English rules" +
				spanEndMarkup + "</p>",
		},
		{
			"already containing rendered markers",
			"<p><span contenteditable=\"false\" class=\"multilang-begin mceNonEditable\"\n" +
				"data-mce-contenteditable=\"false\" lang=\"en\" xml:lang=\"en\">{mlang en}</span>English rules" +
				spanEndMarkup + "</p>",
			"<p><span contenteditable=\"false\" class=\"multilang-begin mceNonEditable\"\n" +
				"data-mce-contenteditable=\"false\" lang=\"en\" xml:lang=\"en\">{mlang en}</span>English rules" +
				spanEndMarkup + "</p>",
		},
		{
			"html containing comments",
			"<p><!-- {mlang de}</p>\n" +
				"<p>Hallo</p>\n" +
				"<p>{mlang}--></p>\n" +
				"<p>{mlang other}Hello{mlang}</p>\n" +
				"<p>Done</p>\n",
			"<p><!-- {mlang de}</p>\n" +
				"<p>Hallo</p>\n" +
				"<p>{mlang}--></p>\n" +
				"<p>" + BeginSpan("other") + "Hello" + spanEndMarkup + "</p>\n" +
				"<p>Done</p>\n",
		},
		{
			"html containing an svg",
			"<p>Resistor: <svg xmlns=\"http://www.w3.org/2000/svg\"\n" +
				" version=\"1.1\" baseProfile=\"full\"\n" +
				" width=\"700px\" height=\"400px\" viewBox=\"0 0 700 400\">\n" +
				"\n" +
				"<!-- Connectors left and right -->\n" +
				"<line x1=\"0\" y1=\"200\" x2=\"700\" y2=\"200\" stroke=\"black\" stroke-width=\"20px\"/>\n" +
				"<!-- The rectangle -->\n" +
				"<rect x=\"100\" y=\"100\" width=\"500\" height=\"200\" fill=\"white\" stroke=\"black\" stroke-width=\"20px\"/>\n" +
				"</svg></p>",
			"<p>Resistor: <svg xmlns=\"http://www.w3.org/2000/svg\"\n" +
				" version=\"1.1\" baseProfile=\"full\"\n" +
				" width=\"700px\" height=\"400px\" viewBox=\"0 0 700 400\">\n" +
				"\n" +
				"<!-- Connectors left and right -->\n" +
				"<line x1=\"0\" y1=\"200\" x2=\"700\" y2=\"200\" stroke=\"black\" stroke-width=\"20px\"/>\n" +
				"<!-- The rectangle -->\n" +
				"<rect x=\"100\" y=\"100\" width=\"500\" height=\"200\" fill=\"white\" stroke=\"black\" stroke-width=\"20px\"/>\n" +
				"</svg></p>",
		},
		{
			"html with tex annotations",
			`<p>The Quadratic Equation: <span class="math-tex">\(ax^2 + bx + c = 0\)</span></p>`,
			`<p>The Quadratic Equation: <span class="math-tex">\(ax^2 + bx + c = 0\)</span></p>`,
		},
		{
			"html containing mathml",
			"<p>The Quadratic Equation: <span><math xmlns=\"http://www.w3.org/1998/Math/MathML\">" +
				"  <mrow>\n" +
				"    <mi>a</mi> <mo>&InvisibleTimes;</mo> <msup><mi>x</mi><mn>2</mn></msup>\n" +
				"    <mo>+</mo><mi>b</mi><mo>&InvisibleTimes;</mo><mi>x</mi>\n" +
				"    <mo>+</mo><mi>c</mi>\n" +
				"  </mrow>\n" +
				"</math></span></p>",
			"<p>The Quadratic Equation: <span><math xmlns=\"http://www.w3.org/1998/Math/MathML\">" +
				"  <mrow>\n" +
				"    <mi>a</mi> <mo>&InvisibleTimes;</mo> <msup><mi>x</mi><mn>2</mn></msup>\n" +
				"    <mo>+</mo><mi>b</mi><mo>&InvisibleTimes;</mo><mi>x</mi>\n" +
				"    <mo>+</mo><mi>c</mi>\n" +
				"  </mrow>\n" +
				"</math></span></p>",
		},
		{
			"html with script tags",
			"<script>  let a = 5;  if (a < 10) {}</script>",
			"<script>  let a = 5;  if (a < 10) {}</script>",
		},
		{
			"markers inside script and style stay literal",
			"<script>var s = '{mlang de}';</script><style>/* {mlang} */</style>{mlang de}x{mlang}",
			"<script>var s = '{mlang de}';</script><style>/* {mlang} */</style>" + spanBeginDE + "x" + spanEndMarkup,
		},
		{
			"case insensitive keyword and flexible whitespace",
			"{ MLang  de }x{ mlang }",
			spanBeginDE + "x" + spanEndMarkup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Highlight(tt.input, RenderOptions{}))
		})
	}
}

func TestRender_DepthTolerance(t *testing.T) {
	assert.Equal(t, "{mlang}", Render("{mlang}", RenderOptions{}))
	assert.Equal(t, "{mlang}{mlang}", Render("{mlang}{mlang}", RenderOptions{}))

	// A stray close drives the depth negative, the next open is not at depth 0
	assert.Equal(t, "{mlang}{mlang de}x", Render("{mlang}{mlang de}x", RenderOptions{}))
}

func TestRender_NestingSuppression(t *testing.T) {
	got := Render("{mlang de}Foo{mlang other}Bar{mlang}{mlang}", RenderOptions{})
	assert.Equal(t, spanBeginDE+"Foo{mlang other}Bar{mlang}"+spanEndMarkup, got)
}

func TestRender_InertRegions(t *testing.T) {
	inputs := []string{
		"<script>{mlang de}</script>",
		"<style>{mlang de}</style>",
		"<!-- {mlang de} -->",
		"<!-- {mlang de}",
		"Hallo <!-- {mlang de}x{mlang}",
		"<p>Hallo</p><style>{mlang de}",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, input, Render(input, RenderOptions{}))
		})
	}
}

func TestRender_CrossElementMarkers(t *testing.T) {
	input := `<div>{mlang de}</div><div class="x" id="y">Foo bar {mlang}</div>`
	want := `<div>` + spanBeginDE + `</div><div class="x" id="y">Foo bar ` + spanEndMarkup + `</div>`
	assert.Equal(t, want, Render(input, RenderOptions{}))
}

func TestRender_AlreadyRenderedIsIdentity(t *testing.T) {
	// Render leaves content with rendered markers alone, even if it also
	// holds literals that Highlight would wrap.
	input := "<p>{mlang de}x{mlang}</p><p>" + spanBeginEN + "y" + spanEndMarkup + "</p>"
	assert.Equal(t, input, Render(input, RenderOptions{}))
}

func TestRender_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"no markers at all",
		"{mlang de}Hallo{mlang}{mlang en}Hello{mlang}",
		"<p>{mlang de}</p><p>{mlang}</p>",
		`<span class="multilang" lang="fr">Bonjour</span>`,
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			opts := RenderOptions{FallbackSpan: true}
			once := Render(input, opts)
			assert.Equal(t, once, Render(once, opts))
		})
	}
}

func TestRender_LegacyMigration(t *testing.T) {
	input := `<span class="multilang" lang="fr">Bonjour</span>`

	t.Run("enabled", func(t *testing.T) {
		got := Render(input, RenderOptions{FallbackSpan: true})
		assert.Equal(t, FallbackBeginSpan("fr")+"Bonjour"+FallbackEndSpan(), got)
	})

	t.Run("disabled", func(t *testing.T) {
		assert.Equal(t, input, Render(input, RenderOptions{}))
	})
}

func TestMigrateLegacySpans(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"nested markup is kept",
			`<p><span class="multilang" lang="de">Hallo <span class="x">schöne</span> <b>Welt</b></span></p>`,
			`<p>` + FallbackBeginSpan("de") + `Hallo <span class="x">schöne</span> <b>Welt</b>` + FallbackEndSpan() + `</p>`,
		},
		{
			"several spans",
			`<span class="multilang" lang="de">Hallo</span><span class="multilang" lang="en">Hello</span>`,
			FallbackBeginSpan("de") + "Hallo" + FallbackEndSpan() + FallbackBeginSpan("en") + "Hello" + FallbackEndSpan(),
		},
		{
			"single quotes and extra classes",
			`<span class='multilang highlight' lang='it' dir="ltr">Ciao</span>`,
			FallbackBeginSpan("it") + "Ciao" + FallbackEndSpan(),
		},
		{
			"missing lang",
			`<span class="multilang">x</span>`,
			FallbackBeginSpan("other") + "x" + FallbackEndSpan(),
		},
		{
			"unclosed span is closed at the end",
			`<span class="multilang" lang="de">Hallo`,
			FallbackBeginSpan("de") + "Hallo" + FallbackEndSpan(),
		},
		{
			"other spans untouched",
			`<span class="multilang-x">a</span></span>`,
			`<span class="multilang-x">a</span></span>`,
		},
		{
			"inside comments untouched",
			`<!-- <span class="multilang" lang="de">x</span> -->`,
			`<!-- <span class="multilang" lang="de">x</span> -->`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MigrateLegacySpans(tt.input))
		})
	}
}

func TestRender_SplitAtBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"open block is closed at the paragraph end",
			`<p>{mlang de}Hallo</p><p>Welt</p>`,
			`<p>` + spanBeginDE + `Hallo` + spanEndMarkup + `</p><p>Welt</p>`,
		},
		{
			"stray close gets an other begin marker",
			`<p>{mlang de}Hallo</p><p>Welt{mlang}</p>`,
			`<p>` + spanBeginDE + `Hallo` + spanEndMarkup + `</p><p>Welt` + BeginSpan("other") + spanEndMarkup + `</p>`,
		},
		{
			"balanced blocks are untouched",
			`<p>{mlang de}Hallo{mlang}</p><div>{mlang en}Hello{mlang}</div>`,
			`<p>` + spanBeginDE + `Hallo` + spanEndMarkup + `</p><div>` + spanBeginEN + `Hello` + spanEndMarkup + `</div>`,
		},
		{
			"inline elements do not split",
			`<p>{mlang de}<b>Hallo</b> <i>Welt</i>{mlang}</p>`,
			`<p>` + spanBeginDE + `<b>Hallo</b> <i>Welt</i>` + spanEndMarkup + `</p>`,
		},
		{
			"nested block inside an open block",
			`<div>{mlang de}<p>x</p>{mlang}</div>`,
			`<div>` + spanBeginDE + `<p>x</p>` + spanEndMarkup + `</div>`,
		},
		{
			"close inside a nested block is balanced per block",
			`<div>{mlang de}<p>x{mlang}</p></div>`,
			`<div>` + spanBeginDE + `<p>x` + BeginSpan("other") + spanEndMarkup + `</p>` + spanEndMarkup + `</div>`,
		},
		{
			"open inside a nested block closes there",
			`<div><p>{mlang de}x</p>y</div>`,
			`<div><p>` + spanBeginDE + `x` + spanEndMarkup + `</p>y</div>`,
		},
		{
			"void and unclosed blocks",
			`<div>{mlang de}<hr><li>x</div><p>y</p>`,
			`<div>` + spanBeginDE + `<hr><li>x` + spanEndMarkup + `</div><p>y</p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.input, RenderOptions{SplitAtBlocks: true}))
		})
	}
}

func TestIsBlockTag(t *testing.T) {
	for _, name := range []string{"p", "div", "li", "h1", "h6", "blockquote", "P", "Section"} {
		assert.True(t, IsBlockTag(name), name)
	}
	for _, name := range []string{"span", "b", "a", "img", "br", "table", ""} {
		assert.False(t, IsBlockTag(name), name)
	}
}

package mlang

// Document is the per-editor state for one piece of content. It records
// whether the content currently holds rendered markers, so hosts never wrap
// markers twice. A Document is not safe for concurrent use; hosts that edit
// the same content from several goroutines must serialize access.
type Document struct {
	content  string
	rendered bool
	render   RenderOptions
	strip    StripOptions
}

// NewDocument creates a document holding persisted content.
func NewDocument(content string, render RenderOptions, strip StripOptions) *Document {
	return &Document{content: content, render: render, strip: strip}
}

// Content returns the current content.
func (d *Document) Content() string {
	return d.content
}

// Rendered reports whether the content holds rendered markers.
func (d *Document) Rendered() bool {
	return d.rendered
}

// Init renders the markers for editing and returns the editor content.
func (d *Document) Init() string {
	if !d.rendered {
		d.content = Render(d.content, d.render)
		d.rendered = true
	}
	return d.content
}

// Update replaces the content with edited editor content. The rendered state
// is kept, since edits happen on rendered content.
func (d *Document) Update(content string) {
	d.content = content
}

// OpenSourceView strips the markers so the raw source can be shown.
func (d *Document) OpenSourceView() string {
	return d.persist()
}

// CloseSourceView takes the possibly edited source and renders it again.
func (d *Document) CloseSourceView(source string) string {
	d.content = source
	d.rendered = false
	return d.Init()
}

// Submit strips the markers and returns the content to be saved.
func (d *Document) Submit() string {
	return d.persist()
}

func (d *Document) persist() string {
	if d.rendered {
		d.content = Strip(d.content, d.strip)
		d.rendered = false
	}
	return d.content
}

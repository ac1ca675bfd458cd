package form

import "bitbucket.org/crgw/rates-inquiry/internal/quote"

type PanelKind int

const (
	PanelRemote PanelKind = iota
	PanelTransport
)

// ErrorPanel is the rendered form of a failed submission.
type ErrorPanel struct {
	Kind    PanelKind
	Heading string
	Message string
	Details string
}

// Renderer draws the results area of the form.
type Renderer interface {
	ShowLoading(loading bool)
	Clear()
	RenderQuote(display quote.Display)
	RenderError(panel ErrorPanel)
}

type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

type Notice struct {
	Kind    NoticeKind
	Message string
}

// NoticeSink draws the transient message banner.
type NoticeSink interface {
	ShowNotice(notice Notice)
	ClearNotice()
}

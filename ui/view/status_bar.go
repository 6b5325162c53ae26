package view

import (
	"github.com/soocke/pdfimg-tool/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatusBar shows the job status line of the launcher.
type StatusBar interface {
	SetStatus(text string)
}

type statusBar struct {
	lbl *TLabelWidget
}

// NewStatusBar creates the status label spanning columns at the given row.
// If parent is nil, the label is positioned relative to the App root.
func NewStatusBar(parent *TFrameWidget, row, columns int) StatusBar {
	s := &statusBar{lbl: TLabel(Txt("Ready"), Style(theme.StyleInfoLabel), Anchor("center"))}
	if parent != nil {
		Grid(s.lbl, In(parent), Row(row), Column(0), Columnspan(columns), Sticky("we"), Pady("2m"))
	} else {
		Grid(s.lbl, Row(row), Column(0), Columnspan(columns), Sticky("we"), Pady("2m"))
	}
	return s
}

// SetStatus updates the status text.
func (s *statusBar) SetStatus(text string) {
	if s == nil || s.lbl == nil {
		return
	}
	s.lbl.Configure(Txt(text))
}

package view

import (
	"log/slog"
	"path/filepath"

	"github.com/soocke/pdfimg-tool/ui/presenter"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// NativeDialogs implements the file pickers and message boxes with Tk's
// platform dialogs.
type NativeDialogs struct {
	logger *slog.Logger
}

func NewNativeDialogs(logger *slog.Logger) *NativeDialogs { return &NativeDialogs{logger: logger} }

var (
	imageTypes = []FileType{
		{TypeName: "Image files", Extensions: []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff", ".webp"}},
		{TypeName: "JPEG files", Extensions: []string{".jpg", ".jpeg"}},
		{TypeName: "PNG files", Extensions: []string{".png"}},
		{TypeName: "All files", Extensions: []string{"*"}},
	}
	pdfTypes = []FileType{
		{TypeName: "PDF files", Extensions: []string{".pdf"}},
		{TypeName: "All files", Extensions: []string{"*"}},
	}
	jpegTypes = []FileType{
		{TypeName: "JPEG files", Extensions: []string{".jpg", ".jpeg"}},
	}
)

func fileTypes(kind presenter.FileKind) ([]FileType, string) {
	switch kind {
	case presenter.KindPDF:
		return pdfTypes, ".pdf"
	case presenter.KindJPEG:
		return jpegTypes, ".jpg"
	default:
		return imageTypes, ".png"
	}
}

// OpenFiles shows the open dialog. A cancelled dialog returns nil.
func (d *NativeDialogs) OpenFiles(title string, kind presenter.FileKind, multiple bool) []string {
	types, _ := fileTypes(kind)
	var files []string
	for _, f := range GetOpenFile(Title(title), Multiple(multiple), Filetypes(types)) {
		if f != "" {
			files = append(files, f)
		}
	}
	if d.logger != nil {
		d.logger.Debug("open dialog", "title", title, "files", len(files))
	}
	return files
}

// SaveFile shows the save dialog preselecting initial. A cancelled dialog
// returns "".
func (d *NativeDialogs) SaveFile(title, initial string, kind presenter.FileKind) string {
	types, ext := fileTypes(kind)
	dir, base := filepath.Split(initial)
	opts := []Opt{Title(title), Filetypes(types), Defaultextension(ext), Initialfile(base)}
	if dir != "" {
		opts = append(opts, Initialdir(dir))
	}
	return GetSaveFile(opts...)
}

// Info shows an informational message box.
func (d *NativeDialogs) Info(title, msg string) {
	MessageBox(Icon("info"), Title(title), Msg(msg))
}

// Error shows an error message box and logs it.
func (d *NativeDialogs) Error(title, msg string) {
	if d.logger != nil {
		d.logger.Warn("user error", "title", title, "message", msg)
	}
	MessageBox(Icon("error"), Title(title), Msg(msg))
}

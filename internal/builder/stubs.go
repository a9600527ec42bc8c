package builder

import (
	"path/filepath"
	"strings"

	"github.com/viperdavethesnake/pan-demo-data-sub000/internal/models"
)

// magicStubs maps file extensions to the minimal leading bytes a type
// sniffer expects. The files are sparse; only these few bytes are real.
var magicStubs = map[string][]byte{
	".pdf":  []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n"),
	".docx": []byte("PK\x03\x04"),
	".xlsx": []byte("PK\x03\x04"),
	".pptx": []byte("PK\x03\x04"),
	".zip":  []byte("PK\x03\x04"),
	".jpg":  []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"),
	".jpeg": []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"),
	".png":  []byte("\x89PNG\r\n\x1a\n"),
	".gif":  []byte("GIF89a"),
	".mp4":  []byte("\x00\x00\x00\x18ftypmp42"),
	".doc":  []byte("\xd0\xcf\x11\xe0\xa1\xb1\x1a\xe1"),
	".xls":  []byte("\xd0\xcf\x11\xe0\xa1\xb1\x1a\xe1"),
	".ppt":  []byte("\xd0\xcf\x11\xe0\xa1\xb1\x1a\xe1"),
	".msg":  []byte("\xd0\xcf\x11\xe0\xa1\xb1\x1a\xe1"),
}

// DefaultStubs is the built-in StubProvider. Regular files get a magic
// header matching their extension; clutter files get tiny plausible
// contents; anything unrecognized gets a short text line.
type DefaultStubs struct{}

func (DefaultStubs) StubFor(item models.WorkItem) []byte {
	name := filepath.Base(item.TargetPath)

	if item.Kind == models.KindClutter {
		switch strings.ToLower(name) {
		case "thumbs.db", "desktop.ini":
			return []byte{0x00}
		}
		if strings.HasPrefix(name, "~$") {
			return []byte{0x00}
		}
		return []byte("tmp")
	}

	ext := strings.ToLower(filepath.Ext(name))
	if stub, ok := magicStubs[ext]; ok {
		return stub
	}
	return []byte("demo content\n")
}

package intake

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// MaxFileBytes bounds a single uploaded image.
const MaxFileBytes = 10 << 20

var acceptedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/jpg":  {},
}

// AcceptsMimeType reports whether the picker accepts mimeType.
func AcceptsMimeType(mimeType string) bool {
	_, ok := acceptedImageTypes[strings.ToLower(strings.TrimSpace(mimeType))]
	return ok
}

// ReadAttachment loads an uploaded file into memory. The declared content
// type is used when present, otherwise it is sniffed.
func ReadAttachment(fh *multipart.FileHeader) (Attachment, error) {
	if fh.Size > MaxFileBytes {
		return Attachment{}, &EncodingError{FileName: fh.Filename, Err: ErrFileTooLarge}
	}
	f, err := fh.Open()
	if err != nil {
		return Attachment{}, &EncodingError{FileName: fh.Filename, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileBytes+1))
	if err != nil {
		return Attachment{}, &EncodingError{FileName: fh.Filename, Err: err}
	}
	if len(data) > MaxFileBytes {
		return Attachment{}, &EncodingError{FileName: fh.Filename, Err: ErrFileTooLarge}
	}

	mimeType := strings.TrimSpace(fh.Header.Get("Content-Type"))
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	if !AcceptsMimeType(mimeType) {
		return Attachment{}, &EncodingError{FileName: fh.Filename, Err: fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)}
	}
	return Attachment{Name: fh.Filename, MimeType: mimeType, Data: data}, nil
}

// ReadAttachments loads every non-empty file part. Browsers send an empty
// part when nothing was chosen; those are skipped.
func ReadAttachments(files []*multipart.FileHeader) ([]Attachment, error) {
	out := make([]Attachment, 0, len(files))
	for _, fh := range files {
		if fh == nil || (fh.Filename == "" && fh.Size == 0) {
			continue
		}
		a, err := ReadAttachment(fh)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// FormFromMultipart builds a FormState from a parsed multipart form.
// Attachments beyond MaxAttachments per sequence are dropped.
func FormFromMultipart(form *multipart.Form) (*FormState, error) {
	state := NewFormState()
	if form == nil {
		return state, nil
	}
	for _, f := range ScalarFields {
		if vals := form.Value[string(f)]; len(vals) > 0 {
			_ = state.SetField(f, vals[0])
		}
	}
	for _, seq := range Sequences {
		files, err := ReadAttachments(form.File[string(seq)])
		if err != nil {
			return nil, err
		}
		if _, err := state.AddAttachments(seq, files...); err != nil {
			return nil, err
		}
	}
	return state, nil
}

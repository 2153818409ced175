package intake

import (
	"context"
	"encoding/base64"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// EncodedImage is the transport form of an attachment: standard base64 with
// no data-URL prefix, and the mime type carried separately.
type EncodedImage struct {
	Data     string
	MimeType string
}

// Decode returns the original bytes.
func (e EncodedImage) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(e.Data)
}

// EncodeAttachment base64-encodes the full content of a.
func EncodeAttachment(a Attachment) (EncodedImage, error) {
	if len(a.Data) == 0 {
		return EncodedImage{}, &EncodingError{FileName: a.Name, Err: ErrEmptyFile}
	}
	mimeType := a.MimeType
	if mimeType == "" {
		mimeType = http.DetectContentType(a.Data)
	}
	return EncodedImage{
		Data:     base64.StdEncoding.EncodeToString(a.Data),
		MimeType: mimeType,
	}, nil
}

// EncodeAll encodes both sequences concurrently. Output order matches input
// order within each sequence; the first failure cancels the rest.
func EncodeAll(ctx context.Context, d FormData) (current, final []EncodedImage, err error) {
	current = make([]EncodedImage, len(d.CurrentSituationImages))
	final = make([]EncodedImage, len(d.FinalProjectImages))

	g, gctx := errgroup.WithContext(ctx)
	schedule := func(files []Attachment, out []EncodedImage) {
		for i, a := range files {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				enc, err := EncodeAttachment(a)
				if err != nil {
					return err
				}
				out[i] = enc
				return nil
			})
		}
	}
	schedule(d.CurrentSituationImages, current)
	schedule(d.FinalProjectImages, final)

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return current, final, nil
}

package magiclink

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
)

// maxFormBytes caps issuance bodies. Identity forms are tiny; for multipart
// it bounds the in-memory portion, for urlencoded it bounds the whole read.
const maxFormBytes = 1 << 20

// decodeForm reads the issuance request body as form data. Both urlencoded
// and multipart bodies collapse to the same Form shape, so the callback sees
// one uniform view regardless of how the login form was submitted.
func decodeForm(r *http.Request) (Form, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, fmt.Errorf("%w: missing Content-Type header", ErrInvalidForm)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		body, err := io.ReadAll(io.LimitReader(r.Body, maxFormBytes+1))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		if len(body) > maxFormBytes {
			return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrInvalidForm, maxFormBytes)
		}
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		return firstValues(values), nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormBytes); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		return firstValues(r.MultipartForm.Value), nil

	default:
		return nil, fmt.Errorf("%w: unsupported media type %q", ErrInvalidForm, mediaType)
	}
}

// firstValues flattens multi-value form fields to their first value.
func firstValues(values map[string][]string) Form {
	form := make(Form, len(values))
	for name, vals := range values {
		if len(vals) > 0 {
			form[name] = vals[0]
		}
	}
	return form
}

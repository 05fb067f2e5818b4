package smtpgw

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
)

// extractTextContent pulls the text/plain parts out of a message body. For
// non-multipart messages the whole body is returned as is.
func extractTextContent(msg *mail.Message) (string, error) {
	contentType := msg.Header.Get("Content-Type")

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		body, err := io.ReadAll(msg.Body)
		if err != nil {
			return "", err
		}
		return string(body), nil
	}

	boundary, ok := params["boundary"]
	if !ok {
		body, err := io.ReadAll(msg.Body)
		if err != nil {
			return "", err
		}
		return string(body), nil
	}

	var text bytes.Buffer
	collectTextParts(multipart.NewReader(msg.Body, boundary), &text)
	if text.Len() == 0 {
		return "[No text content found in multipart message]", nil
	}
	return text.String(), nil
}

// collectTextParts walks the multipart tree, appending every text/plain leaf.
func collectTextParts(mr *multipart.Reader, text *bytes.Buffer) {
	for {
		part, err := mr.NextPart()
		if err != nil {
			return
		}

		partType, params, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if err != nil {
			continue
		}
		switch {
		case partType == "text/plain" || partType == "":
			if body, err := io.ReadAll(part); err == nil {
				text.Write(body)
				text.WriteString("\n")
			}
		case strings.HasPrefix(partType, "multipart/"):
			if boundary, ok := params["boundary"]; ok {
				collectTextParts(multipart.NewReader(part, boundary), text)
			}
		}
	}
}

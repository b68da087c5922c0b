package uploader

import (
	"bytes"
	"io"
	"sync/atomic"
)

// multipartBody streams summary, label and file parts without holding the
// file in memory. Its length is known before the first byte is sent.
type multipartBody struct {
	reader io.Reader
	length int64
	sent   atomic.Int64
}

func newMultipartBody(summary string, labels []string, target string, file io.Reader, fileSize int64) *multipartBody {
	var head bytes.Buffer
	sendLine(&head, "--"+Boundary)
	sendLine(&head, `content-disposition: form-data; name="summary"`)
	sendLine(&head, "")
	sendLine(&head, summary)

	for _, label := range labels {
		sendLine(&head, "--"+Boundary)
		sendLine(&head, `content-disposition: form-data; name="label"`)
		sendLine(&head, "")
		sendLine(&head, label)
	}

	sendLine(&head, "--"+Boundary)
	sendLine(&head, `content-disposition: form-data; name="filename"; filename="`+target+`"`)
	sendLine(&head, "Content-Type: application/octet-stream")
	sendLine(&head, "")

	var tail bytes.Buffer
	sendLine(&tail, "")
	sendLine(&tail, "--"+Boundary+"--")

	return &multipartBody{
		reader: io.MultiReader(bytes.NewReader(head.Bytes()), file, bytes.NewReader(tail.Bytes())),
		length: int64(head.Len()) + fileSize + int64(tail.Len()),
	}
}

func (b *multipartBody) Read(p []byte) (int, error) {
	n, err := b.reader.Read(p)
	b.sent.Add(int64(n))
	return n, err
}

// Len is the Content-Length of the whole body
func (b *multipartBody) Len() int64 {
	return b.length
}

// Sent is the number of body bytes handed to the transport so far. The
// transport reads the body from its own goroutine.
func (b *multipartBody) Sent() int64 {
	return b.sent.Load()
}

// sendLine writes the ASCII form of s followed by CRLF. Characters outside
// ASCII become '?'.
func sendLine(buf *bytes.Buffer, s string) {
	for _, r := range s {
		if r > 0x7f {
			buf.WriteByte('?')
			continue
		}
		buf.WriteByte(byte(r))
	}
	buf.WriteString("\r\n")
}

package http1

import (
	"io"

	"github.com/indigo-web/petite/http"
	"github.com/indigo-web/petite/http/status"
	"github.com/indigo-web/petite/internal/response"
)

// Serializer renders responses exactly as they are described. No headers are added
// implicitly, so Content-Length and Content-Type are the business of whoever builds
// the response.
type Serializer struct {
	buff []byte
}

func NewSerializer(buff []byte) *Serializer {
	return &Serializer{buff: buff}
}

// Serialize renders the response into the internal buffer. The returned slice is valid
// until the next call.
func (s *Serializer) Serialize(resp *http.Response) []byte {
	fields := resp.Reveal()
	s.buff = s.buff[:0]
	s.appendStatusLine(fields)
	s.appendHeaders(fields)
	s.crlf()
	s.buff = append(s.buff, fields.Body...)

	return s.buff
}

// Write serializes the response and writes it at once.
func (s *Serializer) Write(w io.Writer, resp *http.Response) error {
	_, err := w.Write(s.Serialize(resp))
	return err
}

func (s *Serializer) appendStatusLine(fields response.Fields) {
	s.buff = append(s.buff, fields.Proto.String()...)
	s.sp()
	s.buff = append(s.buff, status.Line(fields.Code)...)
	s.crlf()
}

func (s *Serializer) appendHeaders(fields response.Fields) {
	for key, value := range fields.Headers {
		s.buff = append(s.buff, key...)
		s.colonsp()
		s.buff = append(s.buff, value...)
		s.crlf()
	}
}

func (s *Serializer) sp() {
	s.buff = append(s.buff, ' ')
}

func (s *Serializer) colonsp() {
	s.buff = append(s.buff, ": "...)
}

func (s *Serializer) crlf() {
	s.buff = append(s.buff, crlf...)
}

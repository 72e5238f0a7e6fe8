package output_storage

// Write implements io.Writer so transcripts can be fed with fmt.Fprintf.
// p is copied because io.Writer callers may reuse their buffer.
func (s *OutputStorage) Write(p []byte) (int, error) {
	if s == nil {
		return len(p), nil
	}
	if len(p) == 0 {
		return 0, nil
	}

	s.Append(append([]byte(nil), p...))

	return len(p), nil
}

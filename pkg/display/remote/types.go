package remote

type EmptyResponse struct {
}

// RenderRequest carries one PNG encoded frame.
type RenderRequest struct {
	Frame []byte
}

package remote

type EmptyRequest struct {
}

type EmptyResponse struct {
}

type SendRequest struct {
	Data []byte
}

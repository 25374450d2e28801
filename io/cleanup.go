package io

//Closer represents a resource released with Close
type Closer interface {
	Close() error
}

//CloseWithError closes resource and sets err unless it was already set, used with defer
func CloseWithError(closer Closer, err *error) {
	cErr := closer.Close()
	if cErr == nil || *err != nil {
		return
	}
	*err = cErr
}

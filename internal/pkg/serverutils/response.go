package serverutils

// BaseResponse is the generic envelope for responses whose shape is not
// dictated by a fixed output contract.
type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

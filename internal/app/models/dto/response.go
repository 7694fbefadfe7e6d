package dto

// APIResponse is the stable envelope returned by every JSON API endpoint:
// {success, data|error, count?}. Count is only present on list responses.
type APIResponse struct {
	Success    bool        `json:"success"`
	Count      *int        `json:"count,omitempty"`
	Pagination interface{} `json:"pagination,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// NewSuccessResponse wraps data in a success envelope.
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// NewListResponse wraps a list payload and its element count.
func NewListResponse(data interface{}, count int) APIResponse {
	return APIResponse{Success: true, Count: &count, Data: data}
}

// NewPagedResponse wraps a page of a list plus its pagination window.
func NewPagedResponse(data interface{}, count int, pagination interface{}) APIResponse {
	return APIResponse{Success: true, Count: &count, Pagination: pagination, Data: data}
}

// NewMessageResponse returns a success envelope carrying only a message.
func NewMessageResponse(message string) APIResponse {
	return APIResponse{Success: true, Message: message}
}

// NewErrorResponse returns a failure envelope with a user-facing message.
func NewErrorResponse(message string) APIResponse {
	return APIResponse{Success: false, Error: message}
}

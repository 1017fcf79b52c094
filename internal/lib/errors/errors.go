package errors

type HttpError struct {
	Detail string `json:"detail"`
}

func NewHttpError(detail string) HttpError {
	return HttpError{Detail: detail}
}

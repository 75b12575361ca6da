package models

// Service-level error types. Handlers map these onto HTTP statuses through
// the helper package.

type ErrorBadRequest struct{ Message string }

func (e ErrorBadRequest) Error() string { return e.Message }

type ErrorUnauthorized struct{ Message string }

func (e ErrorUnauthorized) Error() string { return e.Message }

type ErrorForbidden struct{ Message string }

func (e ErrorForbidden) Error() string { return e.Message }

type ErrorNotFound struct{ Message string }

func (e ErrorNotFound) Error() string { return e.Message }

type ErrorConflict struct{ Message string }

func (e ErrorConflict) Error() string { return e.Message }

type ErrorValidation struct{ Message string }

func (e ErrorValidation) Error() string { return e.Message }

type ErrorInternalServer struct{ Message string }

func (e ErrorInternalServer) Error() string { return e.Message }

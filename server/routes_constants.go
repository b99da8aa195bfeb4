package server

const (
	RouteAuthLogin     = "/api/auth/login"
	RouteAuthValidate  = "/api/auth/validate"
	RouteTokenGenerate = "/api/tokens/generate"
	RouteTokenRefresh  = "/api/tokens/refresh"
	RouteUserRegister  = "/api/users/register"
)

package common

const (
	// AuthorizationHeaderName carries "Bearer <token>" on scripted requests.
	AuthorizationHeaderName = "Authorization"

	// AccessTokenQueryParam carries the token on plain hyperlinks (downloads).
	AccessTokenQueryParam = "token"

	// DefaultTagName is the reserved tag that always exists and cannot be deleted.
	DefaultTagName = "General"

	// RecentItemsLimit caps every list endpoint.
	RecentItemsLimit = 50
)

package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// DefaultRollingStateSeed is the value the rolling state starts from on a
// fresh ledger.
const DefaultRollingStateSeed = "nonceecnon"

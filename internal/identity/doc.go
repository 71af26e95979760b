// Package identity talks to the Keycloak realm the launcher authenticates
// against.
//
// Three exchanges are supported, all rooted at {baseURL}/realms/idklol:
//
//   - CheckStatus: GET .well-known/openid-configuration (5s). Any 2xx answer
//     with a JSON body counts as up; the body also names the registration
//     endpoint, if any.
//   - Login: POST protocol/openid-connect/token with grant_type=password and
//     client_id=idklol-chat (10s).
//   - Register: POST a JSON user representation to the advertised
//     registration endpoint (10s).
//
// None of the methods return an error. Transport failures, timeouts and
// rejections come back as data (Success/OK false, a message, and a
// FailureKind), so callers can branch without error handling and the launcher
// keeps working while the identity server is unreachable.
//
// The discovery document decodes into go-oidc's ProviderConfig, the password
// grant goes through golang.org/x/oauth2, and registration through the
// gocloak resty client.
package identity

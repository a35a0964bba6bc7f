// Package bitbucket implements the Bitbucket-shaped API surface of the
// integration: authorization header construction, the paginated workspace
// listing client and the post-OAuth redirect token parser.
package bitbucket

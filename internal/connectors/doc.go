// Package connectors provides provider-specific API plumbing. The bitbucket
// subpackage implements the credential header builder, the workspace
// listing client and the OAuth redirect parser the setup services consume.
package connectors

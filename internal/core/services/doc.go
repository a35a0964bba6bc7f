// Package services implements the core business logic of the integration
// wizard: the setup controller that drives mode selection and the two
// authentication flows, and the discovery service that exchanges a
// credential for a normalised account list through the host's validation
// contract.
//
// Services depend on domain types, driven ports and the bitbucket connector
// (for credential selection and redirect parsing); adapters are injected
// through constructors.
package services

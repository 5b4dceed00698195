package client

// Option allows a caller to configure additional options on a client.
type Option interface {
	Apply(c *Client)
}

// WithServicesAddress overrides the project-scoped service base address.
func WithServicesAddress(address string) Option {
	return optionFunc(func(c *Client) { c.servicesAddr = address })
}

// WithOrganizationAddress overrides the organization-scoped base address.
func WithOrganizationAddress(address string) Option {
	return optionFunc(func(c *Client) { c.orgAddr = address })
}

// WithTokenExchangeAddress overrides the token exchange endpoint.
func WithTokenExchangeAddress(address string) Option {
	return optionFunc(func(c *Client) { c.tokenAddr = address })
}

type optionFunc func(c *Client)

func (o optionFunc) Apply(c *Client) { o(c) }

package tenants

// Tenant is a municipal assembly. The backend resolves it from the subdomain of the request host,
// so ID doubles as the subdomain label (e.g. "accra" for accra.billing.example.com).
type Tenant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Region   string `json:"region"`
	Currency string `json:"currency"`
	Active   bool   `json:"active"`
}

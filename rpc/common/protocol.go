package common

// --------------------------------------------------------------------------
// Services
// --------------------------------------------------------------------------

// Services exposed by the server. For XML-RPC each service has its own
// endpoint (/xmlrpc/<service>), for JSON-RPC the service is part of the params.
const (
	ServiceCommon = "common"
	ServiceObject = "object"
	ServiceDB     = "db"
)

// --------------------------------------------------------------------------
// Methods
// --------------------------------------------------------------------------

// Methods of the common and db services
const (
	MethodLogin             = "login"
	MethodCheckConnectivity = "check_connectivity"
	MethodVersion           = "version"
	MethodList              = "list"
)

// MethodExecute is the generic object service entry point. Its first five
// positional arguments are always database, user id, password, model and method.
const MethodExecute = "execute"

// Methods of the object service
const (
	MethodCreate = "create"
	MethodSearch = "search"
	// MethodSearchCount is used instead of search with count=true, the count
	// parameter of search is not available on all server versions
	MethodSearchCount = "search_count"
	MethodRead        = "read"
	MethodWrite       = "write"
	MethodUnlink      = "unlink"
)

// --------------------------------------------------------------------------
// Domains
// --------------------------------------------------------------------------

// Domain operators (prefix notation)
const (
	DomainAnd = "&"
	DomainOr  = "|"
	DomainNot = "!"
)

// Domain is a list of search conditions. Each element is either a condition
// created by Condition or one of the domain operators.
// An empty domain matches every record of a model.
type Domain []interface{}

// Condition creates a single (field, operator, value) search term
func Condition(field, operator string, value interface{}) []interface{} {
	return []interface{}{field, operator, value}
}

// NewDomain creates a domain from the given terms
func NewDomain(terms ...interface{}) Domain {
	d := make(Domain, 0, len(terms))
	return append(d, terms...)
}

// Args returns the domain in a form every transport can encode. A nil domain
// is sent as an empty list.
func (d Domain) Args() []interface{} {
	if d == nil {
		return []interface{}{}
	}
	return []interface{}(d)
}

// --------------------------------------------------------------------------
// Values and Context
// --------------------------------------------------------------------------

// Values maps field names to values for create and write
type Values map[string]interface{}

// Context is the optional request context passed to some object methods (e.g. lang, tz)
type Context map[string]interface{}

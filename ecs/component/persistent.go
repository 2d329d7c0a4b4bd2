package component

// Persistent gives an entity an identity that survives snapshot round trips.
type Persistent struct {
	ID string `json:"id"`
}

var PersistentComponent = NewComponent[Persistent]()

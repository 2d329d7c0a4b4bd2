package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type GhostTag struct{}

var GhostTagComponent = NewComponent[GhostTag]()

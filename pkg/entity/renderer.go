package entity

// Renderer is the boundary the drawing layer implements. The controller
// writes final poses onto the craft and camera handles; a renderer consumes
// them once per frame. Implementations must tolerate nil arguments.
type Renderer interface {
	Clear()
	RenderBody(body *Body)
	RenderCraft(craft *Craft)
	Present()
}

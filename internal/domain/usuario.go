package domain

import "time"

// RolInfo is the role record embedded in API user responses.
type RolInfo struct {
	IDRol     Role   `json:"id_rol"`
	NombreRol string `json:"nombre_rol"`
}

// Usuario is a system account. Identity and timestamps are assigned by the
// server; the client only proposes attribute values.
type Usuario struct {
	IDUsuario          int       `json:"id_usuario"`
	NombreUsuario      string    `json:"nombre_usuario"`
	Correo             string    `json:"correo"`
	Nombre             string    `json:"nombre"`
	Apellido           string    `json:"apellido"`
	IDRol              Role      `json:"id_rol"`
	Rol                *RolInfo  `json:"rol,omitempty"`
	EstaActivo         bool      `json:"esta_activo"`
	FechaCreacion      time.Time `json:"fecha_creacion,omitzero"`
	FechaActualizacion time.Time `json:"fecha_actualizacion,omitzero"`
}

// NombreCompleto returns "Nombre Apellido" for display.
func (u *Usuario) NombreCompleto() string {
	return u.Nombre + " " + u.Apellido
}

// NombreRol returns the display name of the user's role, preferring the
// embedded role record over the bare id.
func (u *Usuario) NombreRol() string {
	if u.Rol != nil && u.Rol.NombreRol != "" {
		return u.Rol.NombreRol
	}
	return u.IDRol.String()
}

// CreateUsuarioRequest is the JSON payload for POST /admin/users.
type CreateUsuarioRequest struct {
	NombreUsuario string `json:"nombre_usuario"`
	Correo        string `json:"correo"`
	Password      string `json:"password"`
	NombreRol     string `json:"nombre_rol"`
	Nombre        string `json:"nombre"`
	Apellido      string `json:"apellido"`
}

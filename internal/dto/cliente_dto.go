package dto

type CrearClienteRequest struct {
	Nombre       string `json:"nombre"        validate:"required"`
	NIF          string `json:"nif"           validate:"required"`
	Direccion    string `json:"direccion"`
	CodigoPostal string `json:"codigo_postal"`
	Ciudad       string `json:"ciudad"`
	Provincia    string `json:"provincia"`
	Email        string `json:"email"         validate:"omitempty,email"`
	Telefono     string `json:"telefono"`
	EsEmpresa    bool   `json:"es_empresa"`
}

type ClienteResponse struct {
	ID           string `json:"id"`
	Nombre       string `json:"nombre"`
	NIF          string `json:"nif"`
	Direccion    string `json:"direccion,omitempty"`
	CodigoPostal string `json:"codigo_postal,omitempty"`
	Ciudad       string `json:"ciudad,omitempty"`
	Provincia    string `json:"provincia,omitempty"`
	Email        string `json:"email,omitempty"`
	Telefono     string `json:"telefono,omitempty"`
	EsEmpresa    bool   `json:"es_empresa"`
	CreatedAt    string `json:"created_at"`
}

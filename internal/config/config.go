package config

import (
	"github.com/spf13/viper"

	"facturador/internal/apperrors"
	"facturador/internal/model"
)

// Config holds all runtime configuration loaded from environment variables.
// The emisor block is the issuer snapshot stamped onto every documento; the
// serie codes drive the numbering allocator. All of it is read once at
// startup and treated as immutable for the session.
type Config struct {
	// Server
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	// Storage
	DatabasePath   string `mapstructure:"DATABASE_PATH"`
	PDFStoragePath string `mapstructure:"PDF_STORAGE_PATH"`

	// Emisor (datos del autónomo/empresa que emite)
	EmisorNombre    string `mapstructure:"EMISOR_NOMBRE"`
	EmisorNIF       string `mapstructure:"EMISOR_NIF"`
	EmisorDireccion string `mapstructure:"EMISOR_DIRECCION"`
	EmisorCP        string `mapstructure:"EMISOR_CP"`
	EmisorCiudad    string `mapstructure:"EMISOR_CIUDAD"`
	EmisorProvincia string `mapstructure:"EMISOR_PROVINCIA"`
	EmisorEmail     string `mapstructure:"EMISOR_EMAIL"`
	EmisorTelefono  string `mapstructure:"EMISOR_TELEFONO"`
	EmisorIBAN      string `mapstructure:"EMISOR_IBAN"`

	// Series de numeración por tipo de documento
	SeriePresupuesto   string `mapstructure:"SERIE_PRESUPUESTO"`
	SerieAlbaran       string `mapstructure:"SERIE_ALBARAN"`
	SerieFactura       string `mapstructure:"SERIE_FACTURA"`
	SerieRectificativa string `mapstructure:"SERIE_RECTIFICATIVA"`

	// Defaults fiscales
	IVAPorDefecto  int `mapstructure:"IVA_POR_DEFECTO"`
	IRPFPorDefecto int `mapstructure:"IRPF_POR_DEFECTO"`

	// Validez de presupuestos en días cuando la petición no la indica
	ValidezPresupuestoDias int `mapstructure:"VALIDEZ_PRESUPUESTO_DIAS"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATABASE_PATH", "facturador.db")
	viper.SetDefault("PDF_STORAGE_PATH", "Documentos")
	viper.SetDefault("SERIE_PRESUPUESTO", "P")
	viper.SetDefault("SERIE_ALBARAN", "AL")
	viper.SetDefault("SERIE_FACTURA", "A")
	viper.SetDefault("SERIE_RECTIFICATIVA", "R")
	viper.SetDefault("IVA_POR_DEFECTO", 21)
	viper.SetDefault("IRPF_POR_DEFECTO", 0)
	viper.SetDefault("VALIDEZ_PRESUPUESTO_DIAS", 30)

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SeriePara returns the configured series code for a document type.
func (c *Config) SeriePara(tipo string) (string, error) {
	var serie string
	switch tipo {
	case model.TipoPresupuesto:
		serie = c.SeriePresupuesto
	case model.TipoAlbaran:
		serie = c.SerieAlbaran
	case model.TipoFactura:
		serie = c.SerieFactura
	case model.TipoRectificativa:
		serie = c.SerieRectificativa
	}
	if serie == "" {
		return "", apperrors.ErrSerieDesconocida
	}
	return serie, nil
}

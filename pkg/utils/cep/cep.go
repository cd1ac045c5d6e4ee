package cep

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrInvalidCEP  = errors.New("cep must contain exactly 8 digits")
	ErrCEPNotFound = errors.New("cep not found")
)

var cepDigits = regexp.MustCompile(`\D`)

// Address is the reshaped ViaCEP payload.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type viaCEPResponse struct {
	CEP        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
	Erro       bool   `json:"erro"`
}

// Normalize strips formatting and checks the 8-digit shape.
func Normalize(raw string) (string, error) {
	digits := cepDigits.ReplaceAllString(raw, "")
	if len(digits) != 8 {
		return "", ErrInvalidCEP
	}
	return digits, nil
}

// Lookup resolves a CEP against the ViaCEP public API.
func Lookup(raw string) (*Address, error) {
	digits, err := Normalize(raw)
	if err != nil {
		return nil, err
	}

	agent := fiber.Get(fmt.Sprintf("https://viacep.com.br/ws/%s/json/", digits))
	status, body, agentErrs := agent.Bytes()
	if len(agentErrs) > 0 {
		return nil, agentErrs[0]
	}
	if status != fiber.StatusOK {
		return nil, fmt.Errorf("viacep returned status %d", status)
	}

	var resp viaCEPResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	if resp.Erro {
		return nil, ErrCEPNotFound
	}

	return &Address{
		CEP:          resp.CEP,
		Street:       resp.Logradouro,
		Neighborhood: resp.Bairro,
		City:         resp.Localidade,
		State:        resp.UF,
	}, nil
}

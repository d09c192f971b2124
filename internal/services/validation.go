package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ValidationService checks email deliverability and phone numbers
// against the Abstract API before accounts and lessor applications are
// accepted. It is optional; when no API keys are configured the callers
// skip it.
type ValidationService struct {
	emailAPIKey string
	phoneAPIKey string
	client      *http.Client
}

func NewValidationService(emailAPIKey, phoneAPIKey string) *ValidationService {
	return &ValidationService{
		emailAPIKey: emailAPIKey,
		phoneAPIKey: phoneAPIKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type emailValidationResult struct {
	Email          string           `json:"email"`
	Deliverability string           `json:"deliverability"`
	IsValidFormat  validationDetail `json:"is_valid_format"`
	IsDisposable   validationDetail `json:"is_disposable_email"`
	IsMxFound      validationDetail `json:"is_mx_found"`
	IsSmtpValid    validationDetail `json:"is_smtp_valid"`
}

type validationDetail struct {
	Value bool   `json:"value"`
	Text  string `json:"text"`
}

type phoneValidationResult struct {
	Phone string `json:"phone"`
	Valid bool   `json:"valid"`
	Type  string `json:"type"`
}

func (v *ValidationService) fetch(endpoint, apiKey, param, value string, out interface{}) error {
	requestURL := fmt.Sprintf("%s?api_key=%s&%s=%s", endpoint, apiKey, param, url.QueryEscape(value))

	resp, err := v.client.Get(requestURL)
	if err != nil {
		return fmt.Errorf("validation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("validation API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read validation response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse validation response: %w", err)
	}
	return nil
}

// IsEmailValid requires a well-formed, non-disposable address with a
// working mailbox behind it.
func (v *ValidationService) IsEmailValid(email string) (bool, error) {
	var result emailValidationResult
	if err := v.fetch("https://emailvalidation.abstractapi.com/v1/", v.emailAPIKey, "email", email, &result); err != nil {
		return false, err
	}

	valid := result.IsValidFormat.Value &&
		!result.IsDisposable.Value &&
		result.IsMxFound.Value &&
		result.IsSmtpValid.Value &&
		result.Deliverability == "DELIVERABLE"
	return valid, nil
}

func (v *ValidationService) IsPhoneValid(phone string) (bool, error) {
	var result phoneValidationResult
	if err := v.fetch("https://phonevalidation.abstractapi.com/v1/", v.phoneAPIKey, "phone", phone, &result); err != nil {
		return false, err
	}
	return result.Valid, nil
}

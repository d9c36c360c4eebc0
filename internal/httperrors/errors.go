// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors provides user-friendly error handling for backend requests.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"mural/cli/internal/backend"
	"mural/cli/internal/logging"

	"github.com/pterm/pterm"
)

// FormatNetworkError shows a single user-friendly message for a failed backend
// call and returns the error wrapped for the command's exit status.
// host names the backend in DNS messages; an empty host prints "the server".
func FormatNetworkError(err error, context, host string) error {
	if err == nil {
		return nil
	}

	displayErrorMessage(err, context, host)

	return fmt.Errorf("%s: %w", context, err)
}

// Classify names the kind of failure for err, the same way the message is chosen.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case isResponseError(err):
		return "response"
	case isTimeoutError(err):
		return "timeout"
	case isDNSError(err):
		return "dns"
	case isConnectionRefusedError(err):
		return "refused"
	case isSSLError(err):
		return "tls"
	default:
		return "generic"
	}
}

func displayErrorMessage(err error, context, host string) {
	if host == "" {
		host = "the server"
	}
	switch Classify(err) {
	case "response":
		showResponseError(context, err)
	case "timeout":
		showTimeoutError(context)
	case "dns":
		showDNSError(context, host)
	case "refused":
		showConnectionRefusedError(context, host)
	case "tls":
		showSSLError(context)
	default:
		showGenericError(context, err.Error())
	}
}

// isResponseError reports whether the backend answered with a status.
func isResponseError(err error) bool {
	var re *backend.RequestError
	return errors.As(err, &re) && re.Status > 0
}

func isTimeoutError(err error) bool {
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// showResponseError reports a non-success answer. Every status is shown the
// same way: the backend's own message, nothing more specific.
func showResponseError(context string, err error) {
	var re *backend.RequestError
	errors.As(err, &re)
	pterm.Error.Printf("Request failed while %s\n", context)
	if re.Message != "" {
		pterm.Println("  " + logging.Mask(re.Message))
	}
	pterm.Debug.Printf("status %d from %s\n", re.Status, re.Op)
	pterm.Println()
}

func showTimeoutError(context string) {
	pterm.Printf("⏱️  Connection timeout while %s\n", context)
	pterm.Println()
	pterm.Println("The server took too long to respond. This could mean:")
	pterm.Println("  • Slow network connection")
	pterm.Println("  • The school server is under heavy load")
	pterm.Println()
	pterm.Println("Please try again in a few moments.")
	pterm.Println()
}

func showDNSError(context, host string) {
	pterm.Printf("🌐 Cannot resolve server address while %s\n", context)
	pterm.Println()
	pterm.Printf("Unable to look up %s. Please check:\n", host)
	pterm.Println("  • Your internet connection is working")
	pterm.Println("  • The api_url in your config (or MURAL_API_URL) is spelled correctly")
	pterm.Println()
}

func showConnectionRefusedError(context, host string) {
	pterm.Printf("🚫 Connection refused while %s\n", context)
	pterm.Println()
	pterm.Printf("%s is not accepting connections. This could mean:\n", host)
	pterm.Println("  • The backend is not running")
	pterm.Println("  • Wrong server address or port")
	pterm.Println()
}

func showSSLError(context string) {
	pterm.Printf("🔒 Secure connection failed while %s\n", context)
	pterm.Println()
	pterm.Println("Cannot establish a secure HTTPS connection. Try:")
	pterm.Println("  • Check your system date and time")
	pterm.Println("  • Verify network proxy settings")
	pterm.Println()
}

func showGenericError(context string, errDetails string) {
	pterm.Printf("❌ Cannot reach the mural server while %s\n", context)
	pterm.Println()

	if errDetails != "" {
		shortErr := logging.Truncate(logging.Mask(errDetails), 100)
		pterm.Debug.Printf("Technical details: %s\n", shortErr)
		pterm.Println()
	}
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/olegiv/presensi-go/internal/i18n"
)

// ContextKeyLanguage holds the negotiated UI language code.
const ContextKeyLanguage ContextKey = "language"

// LanguageCookieName is the cookie name for language preference.
const LanguageCookieName = "presensi_lang"

// Language creates middleware that picks the UI language for the request.
// Priority order:
// 1. Query parameter ?lang=XX (explicit switch, remembered in a cookie)
// 2. Language cookie
// 3. Accept-Language header
// 4. Default language
func Language(isDev bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""

			if q := strings.ToLower(r.URL.Query().Get("lang")); q != "" && i18n.IsSupported(q) {
				lang = q
				http.SetCookie(w, &http.Cookie{
					Name:     LanguageCookieName,
					Value:    lang,
					Path:     "/",
					MaxAge:   365 * 24 * 60 * 60,
					HttpOnly: true,
					Secure:   !isDev,
					SameSite: http.SameSiteLaxMode,
				})
			}

			if lang == "" {
				if c, err := r.Cookie(LanguageCookieName); err == nil && i18n.IsSupported(c.Value) {
					lang = strings.ToLower(c.Value)
				}
			}

			if lang == "" {
				lang = i18n.MatchLanguage(r.Header.Get("Accept-Language"))
			}

			ctx := context.WithValue(r.Context(), ContextKeyLanguage, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetLanguage returns the language chosen by Language, or the default.
func GetLanguage(r *http.Request) string {
	if lang, ok := r.Context().Value(ContextKeyLanguage).(string); ok && lang != "" {
		return lang
	}
	return i18n.DefaultLanguage
}

/*
Copyright 2025 Bankview Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package notification delivers the user-visible notices the session layer
// emits: every state-mutating failure produces one, and the fail-soft
// listers report through here instead of surfacing an error. Notices go to
// the log and, when configured, to a webhook.
package notification

import (
	"log"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/kdiomande/bankview/config"
	"github.com/kdiomande/bankview/internal/request"
)

// NotifyError reports a failure. It logs locally and forwards to the
// configured webhook asynchronously so callers are never blocked.
func NotifyError(systemError error) {
	logrus.Error(systemError)
	go webhookNotification(map[string]interface{}{"error": systemError.Error()})
}

// Notify reports a non-error notice (successful deposit, transfer, login).
func Notify(message string) {
	logrus.Info(message)
	go webhookNotification(map[string]interface{}{"message": message})
}

func webhookNotification(data map[string]interface{}) {
	conf, err := config.Fetch()
	if err != nil {
		log.Println(err)
		return
	}
	if conf.Notification.Webhook.Url == "" {
		return
	}

	payload, err := request.ToJsonReq(&data)
	if err != nil {
		log.Println(err)
		return
	}

	req, err := http.NewRequest("POST", conf.Notification.Webhook.Url, payload)
	if err != nil {
		log.Println(err)
		return
	}
	for key, value := range conf.Notification.Webhook.Headers {
		req.Header.Set(key, value)
	}

	var response map[string]interface{}
	if _, err := request.Call(req, &response); err != nil {
		log.Println(err)
	}
}

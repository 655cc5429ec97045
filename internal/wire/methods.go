package wire

// Outbound method vocabulary. The host rejects anything outside this set, so
// the façade never builds method names dynamically.
const (
	MethodInit                         = "init"
	MethodSetUser                      = "setUser"
	MethodGetUser                      = "getUser"
	MethodIdentifyUser                 = "identifyUser"
	MethodResetUser                    = "resetUser"
	MethodSetUserProperties            = "setUserProperties"
	MethodSetUserWithIDToken           = "setUserWithIdToken"
	MethodRestoreUserWithIDToken       = "restoreUserWithIdToken"
	MethodGetIDTokenStatus             = "getIdTokenStatus"
	MethodShowConversations            = "showConversations"
	MethodShowConversationsWithOptions = "showConversationsWithOptions"
	MethodShowFAQ                      = "showFAQ"
	MethodShowFAQWithOptions           = "showFAQWithOptions"
	MethodGetUnreadCount               = "getUnreadCount"
	MethodSendMessage                  = "sendMessage"
	MethodGetSDKVersion                = "getSdkVersion"
	MethodSetNotificationConfig        = "setNotificationConfig"
	MethodSetPushRegistrationToken     = "setPushRegistrationToken"
	MethodIsOwnPushNotification        = "isOwnPushNotification"
	MethodHandlePushNotification       = "handlePushNotification"
	MethodNotifyAppLocaleChange        = "notifyAppLocaleChange"
	MethodSetEventDelivery             = "setEventDelivery"
)

// Inbound event vocabulary, one tag per broadcast stream.
const (
	EventRestoreIDGenerated     = "restoreIdGenerated"
	EventUserEvents             = "userEvents"
	EventUnreadCountChanged     = "unreadCountChanged"
	EventOpenLinkRequested      = "openLinkRequested"
	EventLocaleChangedByWebView = "localeChangedByWebview"
)

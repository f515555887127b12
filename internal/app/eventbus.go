package app

const TopicUserCreated = "user:created"
const TopicUserUpdated = "user:updated"
const TopicUserDeleted = "user:deleted"
const TopicAuthLogin = "auth:login"
const TopicAuthLoginFailed = "auth:login:failed"
const TopicAuthLogout = "auth:logout"

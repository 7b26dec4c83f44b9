package handler

// StatusForError exposes statusForError to the external test package.
var StatusForError = statusForError

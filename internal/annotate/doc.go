// Package annotate walks unannotated novels and asks a human for each one's
// point of view and read status, saving the collection after every answer.
package annotate

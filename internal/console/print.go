package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"libroteca/internal/types"
)

func (s *Session) print(text string) {
	_, _ = fmt.Fprint(s.Out, text)
}

func (s *Session) println(text string) {
	_, _ = fmt.Fprintln(s.Out, text)
}

func (s *Session) printHeader(title string) {
	s.println("**************************************************")
	s.println("*    " + title)
	s.println("**************************************************")
}

// readLine returns false when input is exhausted.
func (s *Session) readLine() (string, bool) {
	if !s.In.Scan() {
		return "", false
	}

	return s.In.Text(), true
}

// readInt re-prompts until the user enters an integer. Returns false
// when input is exhausted.
func (s *Session) readInt(prompt string) (int, bool) {
	for {
		s.print(prompt)

		line, ok := s.readLine()
		if !ok {
			return 0, false
		}

		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			s.println("Entrada no válida. Por favor, ingrese un número entero.")
			continue
		}

		return n, true
	}
}

func (s *Session) storeError(err error) {
	s.Logger.Error("Store query failed: " + err.Error())
	s.println("Ocurrió un error al consultar el catálogo.")
}

func (s *Session) printBooks(ctx context.Context, rows ...*types.Book) {
	var authorIds []int64
	seen := make(map[int64]struct{})
	for _, book := range rows {
		if book.AuthorId == nil {
			continue
		}
		if _, ok := seen[*book.AuthorId]; !ok {
			seen[*book.AuthorId] = struct{}{}
			authorIds = append(authorIds, *book.AuthorId)
		}
	}

	as, err := s.Authors.GetByIds(ctx, authorIds...)
	if err != nil {
		s.storeError(err)
		return
	}

	s.printHeader("LISTA DE LIBROS")

	for _, book := range rows {
		s.println("--------------------------------------------------")
		s.println("TÍTULO: " + book.Title)

		var author *types.Author
		if book.AuthorId != nil {
			author = as[*book.AuthorId]
		}

		if author != nil {
			s.println("Autor: " + author.Name)
			s.println("Año de nacimiento: " + formatYear(author.BirthYear, "Desconocido"))
			s.println("Año de muerte: " + formatYear(author.DeathYear, "Aún vive"))
		} else {
			s.println("Autor: Desconocido")
		}

		s.println("Idioma: " + book.Language)
		s.println("Descargas: " + strconv.Itoa(book.Downloads))
		s.println("--------------------------------------------------")
	}
}

func formatYear(year *int, fallback string) string {
	if year == nil {
		return fallback
	}

	return strconv.Itoa(*year)
}


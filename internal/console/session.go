// Package console runs the interactive menu. All state (input source,
// output sink, collaborators) lives on the Session so every action can
// be driven from a test without a real terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"libroteca/internal/catalog"
	"libroteca/internal/gutendex"
	"libroteca/internal/storage/authors"
	"libroteca/internal/storage/books"
)

type Session struct {
	In       *bufio.Scanner
	Out      io.Writer
	Logger   *slog.Logger
	Client   *gutendex.Client
	Ingestor *catalog.Ingestor
	Books    books.Repository
	Authors  authors.Repository
}

func NewSession(in io.Reader, out io.Writer, l *slog.Logger,
	client *gutendex.Client, ingestor *catalog.Ingestor,
	br books.Repository, ar authors.Repository) *Session {

	return &Session{
		In:       bufio.NewScanner(in),
		Out:      out,
		Logger:   l,
		Client:   client,
		Ingestor: ingestor,
		Books:    br,
		Authors:  ar,
	}
}

// Run loops the menu until the user exits or input runs out. Every
// recoverable error prints a message and returns to the menu.
func (s *Session) Run(ctx context.Context) error {
	for {
		s.printMenu()

		option, ok := s.readInt("Elija el número de opción que desee: ")
		if !ok {
			return nil
		}

		switch option {
		case 1:
			s.searchBook(ctx)
		case 2:
			s.listBooks(ctx)
		case 3:
			s.listAuthors(ctx)
		case 4:
			s.authorsAliveInRange(ctx)
		case 5:
			s.booksByLanguage(ctx)
		case 6:
			s.topDownloads(ctx)
		case 0:
			s.println("Cerrando la aplicación...")
			return nil
		default:
			s.println("Opción inválida")
		}
	}
}

func (s *Session) printMenu() {
	s.println("------------------")
	s.println("1- Buscar libro por título.")
	s.println("2- Listar libros registrados.")
	s.println("3- Listar autores registrados.")
	s.println("4- Listar autores vivos en un determinado año.")
	s.println("5- Listar libros por idiomas.")
	s.println("6- Top 10 libros más descargados")
	s.println("0- Salir.")
}

func (s *Session) searchBook(ctx context.Context) {
	s.println("Ingrese el nombre del libro o autor:")

	query, ok := s.readLine()
	if !ok {
		return
	}

	if strings.TrimSpace(query) == "" {
		s.println("El texto de búsqueda no puede estar vacío.")
		return
	}

	res, err := s.Client.Search(ctx, query)
	if err != nil {
		s.Logger.Error("Failed to fetch book data from the API: " + err.Error())
		s.println("Ocurrió un error al intentar obtener los datos del libro.")
		return
	}

	candidate := catalog.FirstCandidate(res)
	if candidate == nil {
		s.println("No se encontraron libros que coincidan con: " + query)
		return
	}

	outcome := s.Ingestor.Ingest(ctx, candidate)
	switch outcome.Status {
	case catalog.StatusInserted:
		s.println("Libro guardado: " + outcome.Book.Title)
		s.printBooks(ctx, outcome.Book)
	case catalog.StatusAlreadyExists:
		s.println("El libro '" + outcome.Book.Title + "' ya está registrado.")
		s.printBooks(ctx, outcome.Book)
	case catalog.StatusRejected:
		switch outcome.Reason {
		case catalog.ReasonNoData, catalog.ReasonEmptyTitle:
			s.println("No se encontraron resultados")
		default:
			s.println("No se pudo guardar el libro: " + outcome.Reason)
		}
	}
}

func (s *Session) listBooks(ctx context.Context) {
	s.printHeader("LIBROS REGISTRADOS")

	rows, err := s.Books.GetAll(ctx)
	if err != nil {
		s.storeError(err)
		return
	}

	if len(rows) == 0 {
		s.println("No hay libros registrados.")
		return
	}

	s.printBooks(ctx, rows...)
}

func (s *Session) listAuthors(ctx context.Context) {
	s.printHeader("AUTORES REGISTRADOS")

	rows, err := s.Authors.GetAll(ctx)
	if err != nil {
		s.storeError(err)
		return
	}

	if len(rows) == 0 {
		s.println("No hay autores registrados.")
		return
	}

	for i, author := range rows {
		s.println(fmt.Sprintf("%d. %s", i+1, author.Name))
	}
}

func (s *Session) authorsAliveInRange(ctx context.Context) {
	s.printHeader("AUTORES VIVOS EN UN PERIODO")

	min, ok := s.readInt("Ingrese la primera fecha: ")
	if !ok {
		return
	}

	max, ok := s.readInt("Ingrese la segunda fecha: ")
	if !ok {
		return
	}

	if min > max {
		s.println("Error: La fecha mínima no puede ser mayor que la máxima.")
		return
	}

	rows, err := s.Authors.AliveInRange(ctx, min, max)
	if err != nil {
		s.storeError(err)
		return
	}

	if len(rows) == 0 {
		s.println("No se encontraron autores vivos en el periodo especificado.")
		return
	}

	for _, row := range rows {
		s.println("--------------------------------------------------")
		s.println("AUTOR: " + row.Author.Name)
		s.println("Año de nacimiento: " + formatYear(row.Author.BirthYear, "Desconocido"))
		s.println("Libros del autor:")

		if len(row.Books) == 0 {
			s.println("  (Sin libros registrados)")
		} else {
			for _, book := range row.Books {
				s.println("  - " + book.Title)
			}
		}

		s.println("--------------------------------------------------")
	}
}

func (s *Session) booksByLanguage(ctx context.Context) {
	s.printHeader("LIBROS POR IDIOMA")
	s.println("    es - Español                it - Italiano")
	s.println("    en - Inglés                 ja - Japonés")
	s.println("    fr - Francés                pt - Portugués")
	s.println("    ru - Ruso                   zh - Chino Mandarín")
	s.println("    de - Alemán                 ar - Árabe")

	for {
		s.print("Ingrese la clave de idioma: ")

		code, ok := s.readLine()
		if !ok {
			return
		}

		code = strings.ToLower(strings.TrimSpace(code))
		if !catalog.IsValidLanguage(code) {
			s.println("Idioma no válido. Por favor ingrese uno de los idiomas válidos.")
			continue
		}

		rows, err := s.Books.GetByLanguage(ctx, code)
		if err != nil {
			s.storeError(err)
			return
		}

		if len(rows) == 0 {
			s.println("No hay libros para mostrar.")
			return
		}

		s.printBooks(ctx, rows...)
		return
	}
}

func (s *Session) topDownloads(ctx context.Context) {
	s.printHeader("TOP 10 LIBROS MÁS DESCARGADOS")

	rows, err := s.Books.TopByDownloads(ctx, 10)
	if err != nil {
		s.storeError(err)
		return
	}

	if len(rows) == 0 {
		s.println("No hay libros para mostrar.")
		return
	}

	s.printBooks(ctx, rows...)
}
